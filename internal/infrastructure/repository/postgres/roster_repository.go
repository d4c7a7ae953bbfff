package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	qb "github.com/omarwf/fantasy-rounds/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByUserAndRound(ctx context.Context, userID string, roundNumber int) (roster.Roster, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("user_id", userID), qb.Eq("round", roundNumber)).
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build get roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) GetLatestBefore(ctx context.Context, userID string, roundNumber int) (roster.Roster, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("user_id", userID), qb.Lt("round", roundNumber)).
		OrderBy("round DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build latest roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get latest roster: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) Upsert(ctx context.Context, item roster.Roster) (roster.Roster, error) {
	query, args, err := qb.InsertInto("teams").
		Columns("user_id", "round", "selected_players", "captain_id", "transfers_used", "total_points", "updated_at").
		Values(item.UserID, item.Round, pq.Int64Array(item.PlayerIDs), captainToNull(item.CaptainID), item.TransfersUsed, item.TotalPoints, item.UpdatedAt).
		Suffix(`ON CONFLICT (user_id, round) DO UPDATE SET
selected_players = EXCLUDED.selected_players,
captain_id = EXCLUDED.captain_id,
transfers_used = EXCLUDED.transfers_used,
total_points = EXCLUDED.total_points,
updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return roster.Roster{}, fmt.Errorf("build upsert roster query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return roster.Roster{}, fmt.Errorf("upsert roster: %w", err)
	}
	return item, nil
}

func (r *RosterRepository) ListByRound(ctx context.Context, roundNumber int) ([]roster.Roster, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("round", roundNumber)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters by round: %w", err)
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) ListByUser(ctx context.Context, userID string) ([]roster.Roster, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("user_id", userID)).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters by user: %w", err)
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) CountByPlayer(ctx context.Context, playerID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM teams WHERE selected_players @> ARRAY[$1]::bigint[]`

	var count int
	if err := r.db.GetContext(ctx, &count, query, playerID); err != nil {
		return 0, fmt.Errorf("count rosters by player: %w", err)
	}
	return count, nil
}

func (r *RosterRepository) DeleteByRound(ctx context.Context, roundNumber int) error {
	query, args, err := qb.DeleteFrom("teams").Where(qb.Eq("round", roundNumber)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete rosters query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete rosters by round: %w", err)
	}
	return nil
}

func (r *RosterRepository) AppendTransfer(ctx context.Context, event roster.TransferEvent) (roster.TransferEvent, error) {
	query, args, err := qb.InsertInto("team_transfers").
		Columns("user_id", "round", "player_out_id", "player_in_id", "points_delta", "created_at").
		Values(event.UserID, event.Round, event.PlayerOutID, event.PlayerInID, event.PointsDelta, event.CreatedAt).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return roster.TransferEvent{}, fmt.Errorf("build insert transfer query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&event.ID); err != nil {
		return roster.TransferEvent{}, fmt.Errorf("insert transfer: %w", err)
	}
	return event, nil
}

func (r *RosterRepository) ListTransfers(ctx context.Context, userID string, roundNumber int) ([]roster.TransferEvent, error) {
	query, args, err := qb.Select("*").From("team_transfers").
		Where(qb.Eq("user_id", userID), qb.Eq("round", roundNumber)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list transfers query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select transfers: %w", err)
	}

	out := make([]roster.TransferEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
