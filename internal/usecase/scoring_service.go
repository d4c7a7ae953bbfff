package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/domain/user"
)

const defaultScoringWorkers = 8

type ScoringService struct {
	scoringRepo scoring.Repository
	rosterRepo  roster.Repository
	roundRepo   round.Repository
	playerRepo  player.Repository
	userRepo    user.Repository
	logger      *slog.Logger
	workers     int
	now         func() time.Time
}

func NewScoringService(
	scoringRepo scoring.Repository,
	rosterRepo roster.Repository,
	roundRepo round.Repository,
	playerRepo player.Repository,
	userRepo user.Repository,
	logger *slog.Logger,
) *ScoringService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScoringService{
		scoringRepo: scoringRepo,
		rosterRepo:  rosterRepo,
		roundRepo:   roundRepo,
		playerRepo:  playerRepo,
		userRepo:    userRepo,
		logger:      logger,
		workers:     defaultScoringWorkers,
		now:         time.Now,
	}
}

// ScoreEntry is one player's points for the round being scored.
type ScoreEntry struct {
	PlayerID int64
	Points   int
}

// UpdateScores stores per-player scores for a round and immediately
// recomputes every saved roster's points, so leaderboards never show a
// mix of old and new score rows.
func (s *ScoringService) UpdateScores(ctx context.Context, roundNumber int, entries []ScoreEntry) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.UpdateScores")
	defer span.End()

	if len(entries) == 0 {
		return fmt.Errorf("%w: scores are required", ErrInvalidInput)
	}

	if _, exists, err := s.roundRepo.GetByNumber(ctx, roundNumber); err != nil {
		return fmt.Errorf("get round: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: round=%d", ErrNotFound, roundNumber)
	}

	scores := make([]scoring.PlayerScore, 0, len(entries))
	for _, entry := range entries {
		if _, exists, err := s.playerRepo.GetByID(ctx, entry.PlayerID); err != nil {
			return fmt.Errorf("get player: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: player=%d", ErrNotFound, entry.PlayerID)
		}
		scores = append(scores, scoring.PlayerScore{
			PlayerID: entry.PlayerID,
			Round:    roundNumber,
			Points:   entry.Points,
		})
	}

	if err := s.scoringRepo.UpsertScores(ctx, scores); err != nil {
		return fmt.Errorf("upsert scores: %w", err)
	}

	if err := s.CalculateRoundPoints(ctx, roundNumber); err != nil {
		return fmt.Errorf("recalculate round points: %w", err)
	}

	s.logger.InfoContext(ctx, "scores updated",
		slog.Int("round", roundNumber),
		slog.Int("players", len(scores)),
	)
	return nil
}

// CalculateRoundPoints recomputes TotalPoints for every roster saved in the
// round from the stored score rows, then refreshes each affected user's
// running total. Rosters are scored concurrently on a worker pool.
func (s *ScoringService) CalculateRoundPoints(ctx context.Context, roundNumber int) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.CalculateRoundPoints")
	defer span.End()

	rnd, exists, err := s.roundRepo.GetByNumber(ctx, roundNumber)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: round=%d", ErrNotFound, roundNumber)
	}

	rosters, err := s.rosterRepo.ListByRound(ctx, roundNumber)
	if err != nil {
		return fmt.Errorf("list rosters by round: %w", err)
	}
	if len(rosters) == 0 {
		return nil
	}

	scoreRows, err := s.scoringRepo.ListByRound(ctx, roundNumber)
	if err != nil {
		return fmt.Errorf("list scores by round: %w", err)
	}
	scores := make(map[int64]int, len(scoreRows))
	for _, row := range scoreRows {
		scores[row.PlayerID] = row.Points
	}

	// RoundPoints only reads the transfer fields; the round carries its own
	// snapshot of them.
	cfg := scoring.Config{
		TransferPenalty:       rnd.TransferPenalty,
		FreeTransfersPerRound: rnd.FreeTransfers,
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers   sync.WaitGroup
		failed    atomic.Int64
		userMu    sync.Mutex
		userSeen  = make(map[string]struct{}, len(rosters))
		userQueue = make([]string, 0, len(rosters))
	)
	for _, item := range rosters {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			item.TotalPoints = scoring.RoundPoints(item.PlayerIDs, item.CaptainID, scores, item.TransfersUsed, cfg)
			if _, err := s.rosterRepo.Upsert(ctx, item); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "roster score update failed",
					slog.String("user_id", item.UserID),
					slog.Int("round", roundNumber),
					slog.Any("error", err),
				)
				return
			}

			userMu.Lock()
			if _, ok := userSeen[item.UserID]; !ok {
				userSeen[item.UserID] = struct{}{}
				userQueue = append(userQueue, item.UserID)
			}
			userMu.Unlock()
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit scoring task: %w", err)
		}
	}
	workers.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("recompute round %d: %d roster update(s) failed", roundNumber, n)
	}

	for _, userID := range userQueue {
		if err := s.refreshUserTotal(ctx, userID); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "round points calculated",
		slog.Int("round", roundNumber),
		slog.Int("rosters", len(rosters)),
	)
	return nil
}

// refreshUserTotal sums the user's points across every round they played.
func (s *ScoringService) refreshUserTotal(ctx context.Context, userID string) error {
	rosters, err := s.rosterRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list rosters by user: %w", err)
	}

	total := 0
	for _, item := range rosters {
		total += item.TotalPoints
	}

	if err := s.userRepo.UpdateTotalPoints(ctx, userID, total); err != nil {
		return fmt.Errorf("update user total points: %w", err)
	}
	return nil
}

func (s *ScoringService) GetConfig(ctx context.Context) (scoring.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.GetConfig")
	defer span.End()

	cfg, err := s.scoringRepo.GetConfig(ctx)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("get scoring config: %w", err)
	}
	return cfg, nil
}

func (s *ScoringService) UpdateConfig(ctx context.Context, cfg scoring.Config) (scoring.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.UpdateConfig")
	defer span.End()

	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scoringRepo.SaveConfig(ctx, cfg)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("save scoring config: %w", err)
	}

	s.logger.InfoContext(ctx, "scoring config updated",
		slog.Int("transfer_penalty", saved.TransferPenalty),
		slog.Int("free_transfers", saved.FreeTransfersPerRound),
	)
	return saved, nil
}
