package round

import "context"

// Repository describes round persistence needs from use cases. List returns
// rounds ordered by round number.
type Repository interface {
	List(ctx context.Context) ([]Round, error)
	GetByNumber(ctx context.Context, number int) (Round, bool, error)
	Create(ctx context.Context, item Round) (Round, error)
	Update(ctx context.Context, item Round) (Round, error)
	Delete(ctx context.Context, number int) error
}
