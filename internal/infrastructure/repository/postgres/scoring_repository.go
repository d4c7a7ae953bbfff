package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	qb "github.com/omarwf/fantasy-rounds/internal/platform/querybuilder"
)

type scoreTableModel struct {
	PlayerID int64 `db:"player_id"`
	Round    int   `db:"round"`
	Points   int   `db:"points"`
}

type configTableModel struct {
	CorrectAnswer         int `db:"correct_answer"`
	WrongAnswer           int `db:"wrong_answer"`
	TransferPenalty       int `db:"transfer_penalty"`
	FreeTransfersPerRound int `db:"free_transfers_per_round"`
}

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) GetScore(ctx context.Context, playerID int64, roundNumber int) (scoring.PlayerScore, bool, error) {
	query, args, err := qb.Select("player_id", "round", "points").From("player_scores").
		Where(qb.Eq("player_id", playerID), qb.Eq("round", roundNumber)).
		ToSQL()
	if err != nil {
		return scoring.PlayerScore{}, false, fmt.Errorf("build get score query: %w", err)
	}

	var row scoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.PlayerScore{}, false, nil
		}
		return scoring.PlayerScore{}, false, fmt.Errorf("get score: %w", err)
	}
	return scoring.PlayerScore{PlayerID: row.PlayerID, Round: row.Round, Points: row.Points}, true, nil
}

func (r *ScoringRepository) UpsertScores(ctx context.Context, scores []scoring.PlayerScore) error {
	if len(scores) == 0 {
		return nil
	}

	builder := qb.InsertInto("player_scores").Columns("player_id", "round", "points")
	for _, score := range scores {
		builder = builder.Values(score.PlayerID, score.Round, score.Points)
	}
	query, args, err := builder.
		Suffix("ON CONFLICT (player_id, round) DO UPDATE SET points = EXCLUDED.points").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert scores query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert scores: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListByRound(ctx context.Context, roundNumber int) ([]scoring.PlayerScore, error) {
	query, args, err := qb.Select("player_id", "round", "points").From("player_scores").
		Where(qb.Eq("round", roundNumber)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scores by round: %w", err)
	}

	out := make([]scoring.PlayerScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.PlayerScore{PlayerID: row.PlayerID, Round: row.Round, Points: row.Points})
	}
	return out, nil
}

func (r *ScoringRepository) DeleteByRound(ctx context.Context, roundNumber int) error {
	query, args, err := qb.DeleteFrom("player_scores").Where(qb.Eq("round", roundNumber)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete scores query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete scores by round: %w", err)
	}
	return nil
}

// GetConfig returns the single scoring config row, falling back to defaults
// when none was saved yet.
func (r *ScoringRepository) GetConfig(ctx context.Context) (scoring.Config, error) {
	query, args, err := qb.Select("correct_answer", "wrong_answer", "transfer_penalty", "free_transfers_per_round").
		From("points_config").
		Limit(1).
		ToSQL()
	if err != nil {
		return scoring.Config{}, fmt.Errorf("build get config query: %w", err)
	}

	var row configTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.DefaultConfig(), nil
		}
		return scoring.Config{}, fmt.Errorf("get scoring config: %w", err)
	}
	return scoring.Config{
		CorrectAnswer:         row.CorrectAnswer,
		WrongAnswer:           row.WrongAnswer,
		TransferPenalty:       row.TransferPenalty,
		FreeTransfersPerRound: row.FreeTransfersPerRound,
	}, nil
}

func (r *ScoringRepository) SaveConfig(ctx context.Context, cfg scoring.Config) (scoring.Config, error) {
	query, args, err := qb.InsertInto("points_config").
		Columns("id", "correct_answer", "wrong_answer", "transfer_penalty", "free_transfers_per_round").
		Values(1, cfg.CorrectAnswer, cfg.WrongAnswer, cfg.TransferPenalty, cfg.FreeTransfersPerRound).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
correct_answer = EXCLUDED.correct_answer,
wrong_answer = EXCLUDED.wrong_answer,
transfer_penalty = EXCLUDED.transfer_penalty,
free_transfers_per_round = EXCLUDED.free_transfers_per_round`).
		ToSQL()
	if err != nil {
		return scoring.Config{}, fmt.Errorf("build save config query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return scoring.Config{}, fmt.Errorf("save scoring config: %w", err)
	}
	return cfg, nil
}
