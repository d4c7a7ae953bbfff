package match

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSamePlayer       = errors.New("match players must be distinct")
	ErrInvalidOrder     = errors.New("match order must be at least 1")
	ErrDuplicatePairing = errors.New("pairing already exists in round")
)

// Match pairs two players inside a round. MatchOrder drives display order
// and is unique per round.
type Match struct {
	ID         int64
	Round      int
	Player1ID  int64
	Player2ID  int64
	MatchOrder int
	CreatedAt  time.Time
}

func (m Match) Validate() error {
	if m.Player1ID == m.Player2ID {
		return fmt.Errorf("%w: player id=%d", ErrSamePlayer, m.Player1ID)
	}
	if m.MatchOrder < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, m.MatchOrder)
	}
	return nil
}

// Involves reports whether the player appears on either side.
func (m Match) Involves(playerID int64) bool {
	return m.Player1ID == playerID || m.Player2ID == playerID
}
