package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
)

// RoundPointsCalculator recomputes every saved roster's points for a round.
// ScoringService implements it; the indirection keeps RoundService testable
// without a full scoring stack.
type RoundPointsCalculator interface {
	CalculateRoundPoints(ctx context.Context, roundNumber int) error
}

type RoundService struct {
	roundRepo   round.Repository
	rosterRepo  roster.Repository
	matchRepo   match.Repository
	scoringRepo scoring.Repository
	calculator  RoundPointsCalculator
	logger      *slog.Logger
	now         func() time.Time
}

func NewRoundService(
	roundRepo round.Repository,
	rosterRepo roster.Repository,
	matchRepo match.Repository,
	scoringRepo scoring.Repository,
	calculator RoundPointsCalculator,
	logger *slog.Logger,
) *RoundService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RoundService{
		roundRepo:   roundRepo,
		rosterRepo:  rosterRepo,
		matchRepo:   matchRepo,
		scoringRepo: scoringRepo,
		calculator:  calculator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *RoundService) ListRounds(ctx context.Context) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.ListRounds")
	defer span.End()

	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return rounds, nil
}

func (s *RoundService) GetRound(ctx context.Context, number int) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.GetRound")
	defer span.End()

	item, exists, err := s.roundRepo.GetByNumber(ctx, number)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%d", ErrNotFound, number)
	}
	return item, nil
}

// CurrentRound resolves the single active round per the deadline walk in
// the round package. An empty schedule maps to ErrNotFound.
func (s *RoundService) CurrentRound(ctx context.Context) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.CurrentRound")
	defer span.End()

	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return round.Round{}, fmt.Errorf("list rounds: %w", err)
	}

	current, err := round.CurrentRound(rounds, s.now().UTC())
	if err != nil {
		return round.Round{}, fmt.Errorf("%w: no rounds configured", ErrNotFound)
	}
	return current, nil
}

// CreateRoundInput is the incoming payload for round creation.
type CreateRoundInput struct {
	Number   int
	Deadline time.Time
	TeamSize int
	Budget   *int64
}

func (s *RoundService) CreateRound(ctx context.Context, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.CreateRound")
	defer span.End()

	cfg, err := s.scoringRepo.GetConfig(ctx)
	if err != nil {
		return round.Round{}, fmt.Errorf("get scoring config: %w", err)
	}

	item := round.Round{
		Number:          input.Number,
		Deadline:        input.Deadline.UTC(),
		TeamSize:        input.TeamSize,
		Budget:          input.Budget,
		FreeTransfers:   cfg.FreeTransfersPerRound,
		TransferPenalty: cfg.TransferPenalty,
		CreatedAt:       s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.roundRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if exists {
		return round.Round{}, fmt.Errorf("%w: round %d already exists", ErrConflict, input.Number)
	}

	created, err := s.roundRepo.Create(ctx, item)
	if err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}

	s.logger.InfoContext(ctx, "round created",
		slog.Int("round", created.Number),
		slog.Time("deadline", created.Deadline),
	)
	return created, nil
}

// UpdateRoundInput carries optional fields; nil means keep the stored value.
type UpdateRoundInput struct {
	Deadline        *time.Time
	TeamSize        *int
	Budget          *int64
	FreeTransfers   *int
	TransferPenalty *int
	// ClearBudget removes the cap entirely. Budget and ClearBudget are
	// mutually exclusive.
	ClearBudget bool
}

func (s *RoundService) UpdateRound(ctx context.Context, number int, input UpdateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.UpdateRound")
	defer span.End()

	if input.Budget != nil && input.ClearBudget {
		return round.Round{}, fmt.Errorf("%w: budget and clearBudget are mutually exclusive", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByNumber(ctx, number)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%d", ErrNotFound, number)
	}

	if input.Deadline != nil {
		item.Deadline = input.Deadline.UTC()
	}
	if input.TeamSize != nil {
		item.TeamSize = *input.TeamSize
	}
	if input.Budget != nil {
		item.Budget = input.Budget
	}
	if input.ClearBudget {
		item.Budget = nil
	}
	if input.FreeTransfers != nil {
		item.FreeTransfers = *input.FreeTransfers
	}
	if input.TransferPenalty != nil {
		item.TransferPenalty = *input.TransferPenalty
	}

	if err := item.Validate(); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.roundRepo.Update(ctx, item)
	if err != nil {
		return round.Round{}, fmt.Errorf("update round: %w", err)
	}
	return updated, nil
}

// DeleteRound removes a round and its matches and scores. Rounds with saved
// rosters are protected; deleting them would orphan user selections.
func (s *RoundService) DeleteRound(ctx context.Context, number int) error {
	ctx, span := startUsecaseSpan(ctx, "RoundService.DeleteRound")
	defer span.End()

	_, exists, err := s.roundRepo.GetByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%d", ErrNotFound, number)
	}

	rosters, err := s.rosterRepo.ListByRound(ctx, number)
	if err != nil {
		return fmt.Errorf("list rosters by round: %w", err)
	}
	if len(rosters) > 0 {
		return fmt.Errorf("%w: round %d has %d saved teams", ErrConflict, number, len(rosters))
	}

	if err := s.matchRepo.DeleteByRound(ctx, number); err != nil {
		return fmt.Errorf("delete matches by round: %w", err)
	}
	if err := s.scoringRepo.DeleteByRound(ctx, number); err != nil {
		return fmt.Errorf("delete scores by round: %w", err)
	}
	if err := s.roundRepo.Delete(ctx, number); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}

	s.logger.InfoContext(ctx, "round deleted", slog.Int("round", number))
	return nil
}

// CloseRound closes a round ahead of its deadline and recomputes points for
// every saved roster. Rounds whose deadline already passed are picked up by
// the background processor instead.
func (s *RoundService) CloseRound(ctx context.Context, number int) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "RoundService.CloseRound")
	defer span.End()

	item, exists, err := s.roundRepo.GetByNumber(ctx, number)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%d", ErrNotFound, number)
	}
	if item.IsClosed {
		return round.Round{}, fmt.Errorf("%w: round %d is already closed", ErrConflict, number)
	}
	if !s.now().UTC().Before(item.Deadline) {
		return round.Round{}, fmt.Errorf("%w: round %d deadline already passed", ErrConflict, number)
	}

	item.IsClosed = true
	updated, err := s.roundRepo.Update(ctx, item)
	if err != nil {
		return round.Round{}, fmt.Errorf("close round: %w", err)
	}

	if err := s.calculator.CalculateRoundPoints(ctx, number); err != nil {
		return round.Round{}, fmt.Errorf("calculate round points: %w", err)
	}

	s.logger.InfoContext(ctx, "round closed", slog.Int("round", number))
	return updated, nil
}
