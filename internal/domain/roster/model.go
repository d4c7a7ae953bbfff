package roster

import (
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
)

// Roster is one user's player selection for one round. Values are treated as
// immutable snapshots: mutating operations return a copy, callers decide
// when to persist.
type Roster struct {
	UserID        string
	Round         int
	PlayerIDs     []int64
	CaptainID     *int64
	TransfersUsed int
	TotalPoints   int
	CarriedOver   bool
	UpdatedAt     time.Time
}

// Catalog is a point-in-time snapshot of the player pool keyed by id.
type Catalog map[int64]player.Player

func NewCatalog(players []player.Player) Catalog {
	catalog := make(Catalog, len(players))
	for _, p := range players {
		catalog[p.ID] = p
	}
	return catalog
}

// Contains reports membership of a player id in the selection.
func (r Roster) Contains(playerID int64) bool {
	for _, id := range r.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// TotalCost sums the prices of selected players that resolve in the catalog.
// Players missing from the catalog contribute nothing; ValidateForSave is the
// place where a disappeared player becomes an error.
func (r Roster) TotalCost(catalog Catalog) int64 {
	var total int64
	for _, id := range r.PlayerIDs {
		if p, ok := catalog[id]; ok {
			total += p.Price
		}
	}
	return total
}

func (r Roster) clone() Roster {
	copied := r
	copied.PlayerIDs = append([]int64(nil), r.PlayerIDs...)
	if r.CaptainID != nil {
		captain := *r.CaptainID
		copied.CaptainID = &captain
	}
	return copied
}
