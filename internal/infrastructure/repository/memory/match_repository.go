package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[int64]match.Match
	nextID int64
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[int64]match.Match, len(matches))
	var maxID int64
	for _, m := range matches {
		items[m.ID] = m
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	return &MatchRepository{items: items, nextID: maxID + 1}
}

// ListByRound returns matches ordered by MatchOrder ascending.
func (r *MatchRepository) ListByRound(_ context.Context, roundNumber int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []match.Match
	for _, m := range r.items {
		if m.Round == roundNumber {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchOrder < out[j].MatchOrder })
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	return m, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *MatchRepository) DeleteByRound(_ context.Context, roundNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.items {
		if m.Round == roundNumber {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *MatchRepository) ExistsPairing(_ context.Context, roundNumber int, player1ID, player2ID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.Round != roundNumber {
			continue
		}
		if (m.Player1ID == player1ID && m.Player2ID == player2ID) ||
			(m.Player1ID == player2ID && m.Player2ID == player1ID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MatchRepository) CountByRound(_ context.Context, roundNumber int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.items {
		if m.Round == roundNumber {
			count++
		}
	}
	return count, nil
}
