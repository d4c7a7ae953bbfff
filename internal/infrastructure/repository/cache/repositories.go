package cache

import (
	"context"
	"strconv"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	basecache "github.com/omarwf/fantasy-rounds/internal/platform/cache"
)

// PlayerRepository caches the read side of the player store. Writes pass
// through and drop the affected keys.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListQualified(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list:qualified", func(ctx context.Context) (any, error) {
		items, err := r.next.ListQualified(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := "player:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return player.Player{}, err
	}
	r.invalidate(ctx, created.ID)
	return created, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) (player.Player, error) {
	updated, err := r.next.Update(ctx, item)
	if err != nil {
		return player.Player{}, err
	}
	r.invalidate(ctx, updated.ID)
	return updated, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *PlayerRepository) invalidate(ctx context.Context, id int64) {
	r.cache.Delete(ctx, "player:list")
	r.cache.Delete(ctx, "player:list:qualified")
	r.cache.Delete(ctx, "player:id:"+strconv.FormatInt(id, 10))
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

// RoundRepository caches the round schedule; it changes rarely but is read
// on nearly every request.
type RoundRepository struct {
	next  round.Repository
	cache *basecache.Store
}

func NewRoundRepository(next round.Repository, cache *basecache.Store) *RoundRepository {
	return &RoundRepository{next: next, cache: cache}
}

func (r *RoundRepository) List(ctx context.Context) ([]round.Round, error) {
	v, err := r.cache.GetOrLoad(ctx, "round:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]round.Round(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]round.Round)
	return append([]round.Round(nil), items...), nil
}

func (r *RoundRepository) GetByNumber(ctx context.Context, number int) (round.Round, bool, error) {
	key := "round:number:" + strconv.Itoa(number)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		return cachedRound{value: item, exists: exists}, nil
	})
	if err != nil {
		return round.Round{}, false, err
	}

	cached, _ := v.(cachedRound)
	return cached.value, cached.exists, nil
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) (round.Round, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return round.Round{}, err
	}
	r.invalidate(ctx, created.Number)
	return created, nil
}

func (r *RoundRepository) Update(ctx context.Context, item round.Round) (round.Round, error) {
	updated, err := r.next.Update(ctx, item)
	if err != nil {
		return round.Round{}, err
	}
	r.invalidate(ctx, updated.Number)
	return updated, nil
}

func (r *RoundRepository) Delete(ctx context.Context, number int) error {
	if err := r.next.Delete(ctx, number); err != nil {
		return err
	}
	r.invalidate(ctx, number)
	return nil
}

func (r *RoundRepository) invalidate(ctx context.Context, number int) {
	r.cache.Delete(ctx, "round:list")
	r.cache.Delete(ctx, "round:number:"+strconv.Itoa(number))
}

type cachedRound struct {
	value  round.Round
	exists bool
}
