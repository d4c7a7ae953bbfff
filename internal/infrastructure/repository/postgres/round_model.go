package postgres

import (
	"database/sql"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

type roundTableModel struct {
	Number          int           `db:"round"`
	Deadline        time.Time     `db:"deadline"`
	TeamSize        int           `db:"team_size"`
	Budget          sql.NullInt64 `db:"budget"`
	IsClosed        bool          `db:"is_closed"`
	FreeTransfers   int           `db:"free_transfers"`
	TransferPenalty int           `db:"transfer_penalty"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (m roundTableModel) toDomain() round.Round {
	out := round.Round{
		Number:          m.Number,
		Deadline:        m.Deadline,
		TeamSize:        m.TeamSize,
		IsClosed:        m.IsClosed,
		FreeTransfers:   m.FreeTransfers,
		TransferPenalty: m.TransferPenalty,
		CreatedAt:       m.CreatedAt,
	}
	if m.Budget.Valid {
		budget := m.Budget.Int64
		out.Budget = &budget
	}
	return out
}

func budgetToNull(budget *int64) sql.NullInt64 {
	if budget == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *budget, Valid: true}
}
