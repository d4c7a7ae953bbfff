package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

// RoundProcessorService sweeps open rounds whose deadline has passed,
// closes them, and recomputes their points. It is the automated counterpart
// to RoundService.CloseRound.
type RoundProcessorService struct {
	roundRepo  round.Repository
	calculator RoundPointsCalculator
	interval   time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

func NewRoundProcessorService(
	roundRepo round.Repository,
	calculator RoundPointsCalculator,
	interval time.Duration,
	logger *slog.Logger,
) *RoundProcessorService {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}

	return &RoundProcessorService{
		roundRepo:  roundRepo,
		calculator: calculator,
		interval:   interval,
		logger:     logger,
		now:        time.Now,
	}
}

// Run blocks, sweeping on every tick until ctx is cancelled. One failed
// round does not stop the others; failures surface in the sweep logs.
func (s *RoundProcessorService) Run(ctx context.Context) {
	s.logger.InfoContext(ctx, "round processor started",
		slog.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "round processor stopped")
			return
		case <-ticker.C:
			if err := s.ProcessDueRounds(ctx); err != nil {
				s.logger.ErrorContext(ctx, "round sweep failed", slog.Any("error", err))
			}
		}
	}
}

// ProcessDueRounds closes every open round past its deadline and recomputes
// the points of each. Per-round failures are collected so one bad round does
// not shadow the rest of the sweep.
func (s *RoundProcessorService) ProcessDueRounds(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "RoundProcessorService.ProcessDueRounds")
	defer span.End()

	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return crerr.Wrap(err, "list rounds")
	}

	now := s.now().UTC()
	var sweepErr error
	processed := 0
	for _, rnd := range rounds {
		if rnd.IsClosed || now.Before(rnd.Deadline) {
			continue
		}

		if err := s.processRound(ctx, rnd); err != nil {
			sweepErr = crerr.CombineErrors(sweepErr, crerr.Wrapf(err, "round %d", rnd.Number))
			continue
		}
		processed++
	}

	if processed > 0 {
		s.logger.InfoContext(ctx, "round sweep complete", slog.Int("processed", processed))
	}
	return sweepErr
}

func (s *RoundProcessorService) processRound(ctx context.Context, rnd round.Round) error {
	if err := s.calculator.CalculateRoundPoints(ctx, rnd.Number); err != nil {
		return fmt.Errorf("calculate points: %w", err)
	}

	rnd.IsClosed = true
	if _, err := s.roundRepo.Update(ctx, rnd); err != nil {
		return fmt.Errorf("mark closed: %w", err)
	}

	s.logger.InfoContext(ctx, "round auto-closed",
		slog.Int("round", rnd.Number),
		slog.Time("deadline", rnd.Deadline),
	)
	return nil
}
