package player

import "context"

// Repository describes player pool persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListQualified(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByName(ctx context.Context, name string) (Player, bool, error)
	Create(ctx context.Context, item Player) (Player, error)
	Update(ctx context.Context, item Player) (Player, error)
	Delete(ctx context.Context, id int64) error
}
