package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	qb "github.com/omarwf/fantasy-rounds/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) List(ctx context.Context) ([]round.Round, error) {
	query, args, err := qb.Select("*").From("rounds").OrderBy("round").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rounds: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RoundRepository) GetByNumber(ctx context.Context, number int) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").Where(qb.Eq("round", number)).ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by number: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) (round.Round, error) {
	query, args, err := qb.InsertInto("rounds").
		Columns("round", "deadline", "team_size", "budget", "is_closed", "free_transfers", "transfer_penalty", "created_at").
		Values(item.Number, item.Deadline, item.TeamSize, budgetToNull(item.Budget), item.IsClosed, item.FreeTransfers, item.TransferPenalty, item.CreatedAt).
		ToSQL()
	if err != nil {
		return round.Round{}, fmt.Errorf("build insert round query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return round.Round{}, fmt.Errorf("insert round: %w", err)
	}
	return item, nil
}

func (r *RoundRepository) Update(ctx context.Context, item round.Round) (round.Round, error) {
	query, args, err := qb.Update("rounds").
		Set("deadline", item.Deadline).
		Set("team_size", item.TeamSize).
		Set("budget", budgetToNull(item.Budget)).
		Set("is_closed", item.IsClosed).
		Set("free_transfers", item.FreeTransfers).
		Set("transfer_penalty", item.TransferPenalty).
		Where(qb.Eq("round", item.Number)).
		ToSQL()
	if err != nil {
		return round.Round{}, fmt.Errorf("build update round query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return round.Round{}, fmt.Errorf("update round: %w", err)
	}
	return item, nil
}

func (r *RoundRepository) Delete(ctx context.Context, number int) error {
	query, args, err := qb.DeleteFrom("rounds").Where(qb.Eq("round", number)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete round query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}
