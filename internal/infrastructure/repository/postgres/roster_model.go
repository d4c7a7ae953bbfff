package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
)

type rosterTableModel struct {
	UserID        string        `db:"user_id"`
	Round         int           `db:"round"`
	PlayerIDs     pq.Int64Array `db:"selected_players"`
	CaptainID     sql.NullInt64 `db:"captain_id"`
	TransfersUsed int           `db:"transfers_used"`
	TotalPoints   int           `db:"total_points"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

func (m rosterTableModel) toDomain() roster.Roster {
	out := roster.Roster{
		UserID:        m.UserID,
		Round:         m.Round,
		PlayerIDs:     append([]int64(nil), m.PlayerIDs...),
		TransfersUsed: m.TransfersUsed,
		TotalPoints:   m.TotalPoints,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.CaptainID.Valid {
		captain := m.CaptainID.Int64
		out.CaptainID = &captain
	}
	return out
}

func captainToNull(captainID *int64) sql.NullInt64 {
	if captainID == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *captainID, Valid: true}
}

type transferTableModel struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	Round       int       `db:"round"`
	PlayerOutID int64     `db:"player_out_id"`
	PlayerInID  int64     `db:"player_in_id"`
	PointsDelta int       `db:"points_delta"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m transferTableModel) toDomain() roster.TransferEvent {
	return roster.TransferEvent{
		ID:          m.ID,
		UserID:      m.UserID,
		Round:       m.Round,
		PlayerOutID: m.PlayerOutID,
		PlayerInID:  m.PlayerInID,
		PointsDelta: m.PointsDelta,
		CreatedAt:   m.CreatedAt,
	}
}
