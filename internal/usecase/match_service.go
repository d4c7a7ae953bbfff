package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

type MatchService struct {
	matchRepo  match.Repository
	roundRepo  round.Repository
	playerRepo player.Repository
	logger     *slog.Logger
	now        func() time.Time
}

func NewMatchService(matchRepo match.Repository, roundRepo round.Repository, playerRepo player.Repository, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		roundRepo:  roundRepo,
		playerRepo: playerRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) ListMatches(ctx context.Context, roundNumber int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.ListByRound(ctx, roundNumber)
	if err != nil {
		return nil, fmt.Errorf("list matches by round: %w", err)
	}
	return matches, nil
}

// CreateMatchInput is the incoming payload for match creation.
type CreateMatchInput struct {
	Round      int
	Player1ID  int64
	Player2ID  int64
	MatchOrder int
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.CreateMatch")
	defer span.End()

	item := match.Match{
		Round:      input.Round,
		Player1ID:  input.Player1ID,
		Player2ID:  input.Player2ID,
		MatchOrder: input.MatchOrder,
		CreatedAt:  s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.roundRepo.GetByNumber(ctx, input.Round); err != nil {
		return match.Match{}, fmt.Errorf("get round: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: round=%d", ErrNotFound, input.Round)
	}

	for _, id := range []int64{input.Player1ID, input.Player2ID} {
		if _, exists, err := s.playerRepo.GetByID(ctx, id); err != nil {
			return match.Match{}, fmt.Errorf("get player: %w", err)
		} else if !exists {
			return match.Match{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
		}
	}

	paired, err := s.matchRepo.ExistsPairing(ctx, input.Round, input.Player1ID, input.Player2ID)
	if err != nil {
		return match.Match{}, fmt.Errorf("check pairing: %w", err)
	}
	if paired {
		return match.Match{}, fmt.Errorf("%w: %w: players %d and %d in round %d",
			ErrConflict, match.ErrDuplicatePairing, input.Player1ID, input.Player2ID, input.Round)
	}

	if err := s.checkOrderFree(ctx, input.Round, input.MatchOrder, 0); err != nil {
		return match.Match{}, err
	}

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		slog.Int64("match_id", created.ID),
		slog.Int("round", created.Round),
	)
	return created, nil
}

// UpdateMatchInput carries optional fields; nil means keep the stored value.
type UpdateMatchInput struct {
	Player1ID  *int64
	Player2ID  *int64
	MatchOrder *int
}

func (s *MatchService) UpdateMatch(ctx context.Context, id int64, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.UpdateMatch")
	defer span.End()

	item, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	if input.Player1ID != nil {
		item.Player1ID = *input.Player1ID
	}
	if input.Player2ID != nil {
		item.Player2ID = *input.Player2ID
	}
	if input.MatchOrder != nil {
		item.MatchOrder = *input.MatchOrder
	}

	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.Player1ID != nil || input.Player2ID != nil {
		for _, pid := range []int64{item.Player1ID, item.Player2ID} {
			if _, exists, err := s.playerRepo.GetByID(ctx, pid); err != nil {
				return match.Match{}, fmt.Errorf("get player: %w", err)
			} else if !exists {
				return match.Match{}, fmt.Errorf("%w: player=%d", ErrNotFound, pid)
			}
		}
	}

	if input.MatchOrder != nil {
		if err := s.checkOrderFree(ctx, item.Round, item.MatchOrder, item.ID); err != nil {
			return match.Match{}, err
		}
	}

	updated, err := s.matchRepo.Update(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	return updated, nil
}

// checkOrderFree rejects a match order already taken by another match in the
// round. excludeID skips the match being updated.
func (s *MatchService) checkOrderFree(ctx context.Context, roundNumber, order int, excludeID int64) error {
	matches, err := s.matchRepo.ListByRound(ctx, roundNumber)
	if err != nil {
		return fmt.Errorf("list matches by round: %w", err)
	}
	for _, m := range matches {
		if m.ID != excludeID && m.MatchOrder == order {
			return fmt.Errorf("%w: match order %d already taken in round %d",
				ErrConflict, order, roundNumber)
		}
	}
	return nil
}

func (s *MatchService) DeleteMatch(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "MatchService.DeleteMatch")
	defer span.End()

	_, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}
