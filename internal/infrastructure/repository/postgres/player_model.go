package postgres

import (
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Price     int64     `db:"price"`
	Qualified bool      `db:"qualified"`
	Points    int       `db:"points"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Qualified: m.Qualified,
		Points:    m.Points,
	}
}
