package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
)

type PlayerService struct {
	playerRepo player.Repository
	rosterRepo roster.Repository
	logger     *slog.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, rosterRepo roster.Repository, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) ListQualifiedPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListQualifiedPlayers")
	defer span.End()

	players, err := s.playerRepo.ListQualified(ctx)
	if err != nil {
		return nil, fmt.Errorf("list qualified players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetPlayer")
	defer span.End()

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return item, nil
}

// CreatePlayerInput is the incoming payload for player creation.
type CreatePlayerInput struct {
	Name      string
	Price     int64
	Qualified bool
	Points    int
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.CreatePlayer")
	defer span.End()

	item := player.Player{
		Name:      strings.TrimSpace(input.Name),
		Price:     input.Price,
		Qualified: input.Qualified,
		Points:    input.Points,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.playerRepo.GetByName(ctx, item.Name)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by name: %w", err)
	}
	if exists {
		return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrConflict, item.Name)
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		slog.Int64("player_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// UpdatePlayerInput carries optional fields; nil means keep the stored value.
type UpdatePlayerInput struct {
	Name      *string
	Price     *int64
	Qualified *bool
	Points    *int
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id int64, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.UpdatePlayer")
	defer span.End()

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != item.Name {
			other, taken, err := s.playerRepo.GetByName(ctx, name)
			if err != nil {
				return player.Player{}, fmt.Errorf("get player by name: %w", err)
			}
			if taken && other.ID != id {
				return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrConflict, name)
			}
		}
		item.Name = name
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Qualified != nil {
		item.Qualified = *input.Qualified
	}
	if input.Points != nil {
		item.Points = *input.Points
	}

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.playerRepo.Update(ctx, item)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	return updated, nil
}

// DeletePlayer removes a player unless any saved roster still includes them.
func (s *PlayerService) DeletePlayer(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.DeletePlayer")
	defer span.End()

	_, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	count, err := s.rosterRepo.CountByPlayer(ctx, id)
	if err != nil {
		return fmt.Errorf("count rosters by player: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: player %d is selected in %d team(s)", ErrConflict, id, count)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", slog.Int64("player_id", id))
	return nil
}
