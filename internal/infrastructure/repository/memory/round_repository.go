package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

type RoundRepository struct {
	mu    sync.RWMutex
	items map[int]round.Round
}

func NewRoundRepository(rounds []round.Round) *RoundRepository {
	items := make(map[int]round.Round, len(rounds))
	for _, r := range rounds {
		items[r.Number] = r
	}
	return &RoundRepository{items: items}
}

// List returns rounds ordered by round number ascending.
func (r *RoundRepository) List(_ context.Context) ([]round.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]round.Round, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *RoundRepository) GetByNumber(_ context.Context, number int) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[number]
	return item, ok, nil
}

func (r *RoundRepository) Create(_ context.Context, item round.Round) (round.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Number] = item
	return item, nil
}

func (r *RoundRepository) Update(_ context.Context, item round.Round) (round.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Number] = item
	return item, nil
}

func (r *RoundRepository) Delete(_ context.Context, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, number)
	return nil
}
