package roster

import (
	"context"
	"time"
)

// TransferEvent is an audit record for a single counted transfer.
type TransferEvent struct {
	ID          int64
	UserID      string
	Round       int
	PlayerOutID int64
	PlayerInID  int64
	PointsDelta int
	CreatedAt   time.Time
}

type Repository interface {
	// GetByUserAndRound returns the saved roster, reporting found=false
	// when the user never saved one for that round.
	GetByUserAndRound(ctx context.Context, userID string, roundNumber int) (Roster, bool, error)
	// GetLatestBefore returns the user's most recent saved roster with a
	// round number strictly below roundNumber.
	GetLatestBefore(ctx context.Context, userID string, roundNumber int) (Roster, bool, error)
	Upsert(ctx context.Context, item Roster) (Roster, error)
	ListByRound(ctx context.Context, roundNumber int) ([]Roster, error)
	ListByUser(ctx context.Context, userID string) ([]Roster, error)
	// CountByPlayer reports how many saved rosters, across all rounds,
	// include the player.
	CountByPlayer(ctx context.Context, playerID int64) (int, error)
	DeleteByRound(ctx context.Context, roundNumber int) error

	AppendTransfer(ctx context.Context, event TransferEvent) (TransferEvent, error)
	ListTransfers(ctx context.Context, userID string, roundNumber int) ([]TransferEvent, error)
}
