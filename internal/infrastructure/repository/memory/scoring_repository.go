package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
)

type scoreKey struct {
	playerID int64
	round    int
}

type ScoringRepository struct {
	mu     sync.RWMutex
	scores map[scoreKey]scoring.PlayerScore
	config scoring.Config
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		scores: make(map[scoreKey]scoring.PlayerScore),
		config: scoring.DefaultConfig(),
	}
}

func (r *ScoringRepository) GetScore(_ context.Context, playerID int64, roundNumber int) (scoring.PlayerScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, ok := r.scores[scoreKey{playerID: playerID, round: roundNumber}]
	return score, ok, nil
}

func (r *ScoringRepository) UpsertScores(_ context.Context, scores []scoring.PlayerScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, score := range scores {
		r.scores[scoreKey{playerID: score.PlayerID, round: score.Round}] = score
	}
	return nil
}

func (r *ScoringRepository) ListByRound(_ context.Context, roundNumber int) ([]scoring.PlayerScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []scoring.PlayerScore
	for key, score := range r.scores {
		if key.round == roundNumber {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *ScoringRepository) DeleteByRound(_ context.Context, roundNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.scores {
		if key.round == roundNumber {
			delete(r.scores, key)
		}
	}
	return nil
}

func (r *ScoringRepository) GetConfig(_ context.Context) (scoring.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.config, nil
}

func (r *ScoringRepository) SaveConfig(_ context.Context, cfg scoring.Config) (scoring.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.config = cfg
	return cfg, nil
}
