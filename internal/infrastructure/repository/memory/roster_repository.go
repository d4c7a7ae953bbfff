package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
)

type rosterKey struct {
	userID string
	round  int
}

type RosterRepository struct {
	mu        sync.RWMutex
	items     map[rosterKey]roster.Roster
	transfers []roster.TransferEvent
	nextID    int64
}

func NewRosterRepository(rosters []roster.Roster) *RosterRepository {
	items := make(map[rosterKey]roster.Roster, len(rosters))
	for _, item := range rosters {
		items[rosterKey{userID: item.UserID, round: item.Round}] = cloneRoster(item)
	}
	return &RosterRepository{items: items, nextID: 1}
}

func cloneRoster(item roster.Roster) roster.Roster {
	out := item
	out.PlayerIDs = append([]int64(nil), item.PlayerIDs...)
	if item.CaptainID != nil {
		captain := *item.CaptainID
		out.CaptainID = &captain
	}
	return out
}

func (r *RosterRepository) GetByUserAndRound(_ context.Context, userID string, roundNumber int) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[rosterKey{userID: userID, round: roundNumber}]
	if !ok {
		return roster.Roster{}, false, nil
	}
	return cloneRoster(item), true, nil
}

func (r *RosterRepository) GetLatestBefore(_ context.Context, userID string, roundNumber int) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := roster.Roster{}
	found := false
	for key, item := range r.items {
		if key.userID != userID || key.round >= roundNumber {
			continue
		}
		if !found || item.Round > best.Round {
			best = item
			found = true
		}
	}
	if !found {
		return roster.Roster{}, false, nil
	}
	return cloneRoster(best), true, nil
}

func (r *RosterRepository) Upsert(_ context.Context, item roster.Roster) (roster.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[rosterKey{userID: item.UserID, round: item.Round}] = cloneRoster(item)
	return cloneRoster(item), nil
}

func (r *RosterRepository) ListByRound(_ context.Context, roundNumber int) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Roster
	for key, item := range r.items {
		if key.round == roundNumber {
			out = append(out, cloneRoster(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *RosterRepository) ListByUser(_ context.Context, userID string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.Roster
	for key, item := range r.items {
		if key.userID == userID {
			out = append(out, cloneRoster(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

func (r *RosterRepository) CountByPlayer(_ context.Context, playerID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.Contains(playerID) {
			count++
		}
	}
	return count, nil
}

func (r *RosterRepository) DeleteByRound(_ context.Context, roundNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.round == roundNumber {
			delete(r.items, key)
		}
	}
	return nil
}

func (r *RosterRepository) AppendTransfer(_ context.Context, event roster.TransferEvent) (roster.TransferEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = r.nextID
	r.nextID++
	r.transfers = append(r.transfers, event)
	return event, nil
}

func (r *RosterRepository) ListTransfers(_ context.Context, userID string, roundNumber int) ([]roster.TransferEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []roster.TransferEvent
	for _, event := range r.transfers {
		if event.UserID == userID && event.Round == roundNumber {
			out = append(out, event)
		}
	}
	return out, nil
}
