package scoring

import "context"

type Repository interface {
	GetScore(ctx context.Context, playerID int64, roundNumber int) (PlayerScore, bool, error)
	// UpsertScores replaces the score rows for the given players in one shot.
	UpsertScores(ctx context.Context, scores []PlayerScore) error
	ListByRound(ctx context.Context, roundNumber int) ([]PlayerScore, error)
	DeleteByRound(ctx context.Context, roundNumber int) error

	GetConfig(ctx context.Context) (Config, error)
	SaveConfig(ctx context.Context, cfg Config) (Config, error)
}
