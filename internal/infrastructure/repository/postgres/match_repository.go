package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	qb "github.com/omarwf/fantasy-rounds/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID         int64     `db:"id"`
	Round      int       `db:"round"`
	Player1ID  int64     `db:"player1_id"`
	Player2ID  int64     `db:"player2_id"`
	MatchOrder int       `db:"match_order"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         m.ID,
		Round:      m.Round,
		Player1ID:  m.Player1ID,
		Player2ID:  m.Player2ID,
		MatchOrder: m.MatchOrder,
		CreatedAt:  m.CreatedAt,
	}
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByRound(ctx context.Context, roundNumber int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("round", roundNumber)).
		OrderBy("match_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by round: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	query, args, err := qb.InsertInto("matches").
		Columns("round", "player1_id", "player2_id", "match_order", "created_at").
		Values(item.Round, item.Player1ID, item.Player2ID, item.MatchOrder, item.CreatedAt).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("player1_id", item.Player1ID).
		Set("player2_id", item.Player2ID).
		Set("match_order", item.MatchOrder).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func (r *MatchRepository) DeleteByRound(ctx context.Context, roundNumber int) error {
	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("round", roundNumber)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches by round: %w", err)
	}
	return nil
}

func (r *MatchRepository) ExistsPairing(ctx context.Context, roundNumber int, player1ID, player2ID int64) (bool, error) {
	const query = `
SELECT EXISTS (
  SELECT 1 FROM matches
  WHERE round = $1
    AND ((player1_id = $2 AND player2_id = $3) OR (player1_id = $3 AND player2_id = $2))
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, roundNumber, player1ID, player2ID); err != nil {
		return false, fmt.Errorf("check match pairing: %w", err)
	}
	return exists, nil
}

func (r *MatchRepository) CountByRound(ctx context.Context, roundNumber int) (int, error) {
	const query = `SELECT COUNT(*) FROM matches WHERE round = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, roundNumber); err != nil {
		return 0, fmt.Errorf("count matches by round: %w", err)
	}
	return count, nil
}
