package match

import "context"

type Repository interface {
	ListByRound(ctx context.Context, roundNumber int) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	Create(ctx context.Context, item Match) (Match, error)
	Update(ctx context.Context, item Match) (Match, error)
	Delete(ctx context.Context, id int64) error
	DeleteByRound(ctx context.Context, roundNumber int) error
	// ExistsPairing is order-insensitive: (a,b) and (b,a) are the same pairing.
	ExistsPairing(ctx context.Context, roundNumber int, player1ID, player2ID int64) (bool, error)
	CountByRound(ctx context.Context, roundNumber int) (int, error)
}
