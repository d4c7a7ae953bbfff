package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/domain/user"
)

const defaultLeaderboardWorkers = 4

// Standing is one leaderboard row.
type Standing struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// RoundBreakdown is a user's performance in one round. HasTeam is false when
// the user never saved a roster for the round.
type RoundBreakdown struct {
	Round         int              `json:"round"`
	Points        int              `json:"points"`
	TransfersUsed int              `json:"transfersUsed"`
	Players       []BreakdownEntry `json:"players"`
	HasTeam       bool             `json:"hasTeam"`
}

type BreakdownEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	IsCaptain bool   `json:"isCaptain"`
}

// DetailedStanding is a leaderboard row with per-round history.
type DetailedStanding struct {
	Rank        int              `json:"rank"`
	UserID      string           `json:"userId"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	TotalPoints int              `json:"totalPoints"`
	Rounds      []RoundBreakdown `json:"rounds"`
}

type LeaderboardService struct {
	userRepo    user.Repository
	rosterRepo  roster.Repository
	roundRepo   round.Repository
	playerRepo  player.Repository
	scoringRepo scoring.Repository
	logger      *slog.Logger
	workers     int
}

func NewLeaderboardService(
	userRepo user.Repository,
	rosterRepo roster.Repository,
	roundRepo round.Repository,
	playerRepo player.Repository,
	scoringRepo scoring.Repository,
	logger *slog.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeaderboardService{
		userRepo:    userRepo,
		rosterRepo:  rosterRepo,
		roundRepo:   roundRepo,
		playerRepo:  playerRepo,
		scoringRepo: scoringRepo,
		logger:      logger,
		workers:     defaultLeaderboardWorkers,
	}
}

// Rankings returns every user ordered by running total, best first. Ties
// keep registration order.
func (s *LeaderboardService) Rankings(ctx context.Context) ([]Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Rankings")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalPoints > users[j].TotalPoints
	})

	standings := make([]Standing, 0, len(users))
	for i, u := range users {
		standings = append(standings, Standing{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name,
			Points: u.TotalPoints,
		})
	}
	return standings, nil
}

// DetailedStandings builds the round-by-round history for every user.
// Per-user histories are assembled concurrently since each one walks the
// full round list.
func (s *LeaderboardService) DetailedStandings(ctx context.Context) ([]DetailedStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.DetailedStandings")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	nameByID := make(map[int64]string, len(players))
	for _, p := range players {
		nameByID[p.ID] = p.Name
	}

	scoresByRound := make(map[int]map[int64]int, len(rounds))
	for _, rnd := range rounds {
		rows, err := s.scoringRepo.ListByRound(ctx, rnd.Number)
		if err != nil {
			return nil, fmt.Errorf("list scores for round %d: %w", rnd.Number, err)
		}
		scores := make(map[int64]int, len(rows))
		for _, row := range rows {
			scores[row.PlayerID] = row.Points
		}
		scoresByRound[rnd.Number] = scores
	}

	standings := make([]DetailedStanding, len(users))
	workers := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(s.workers)
	for i, u := range users {
		i, u := i, u
		workers.Go(func(ctx context.Context) error {
			row, err := s.buildUserHistory(ctx, u, rounds, nameByID, scoresByRound)
			if err != nil {
				return err
			}
			standings[i] = row
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalPoints > standings[j].TotalPoints
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

func (s *LeaderboardService) buildUserHistory(
	ctx context.Context,
	u user.User,
	rounds []round.Round,
	nameByID map[int64]string,
	scoresByRound map[int]map[int64]int,
) (DetailedStanding, error) {
	row := DetailedStanding{
		UserID:      u.ID,
		Name:        u.Name,
		Email:       u.Email,
		TotalPoints: u.TotalPoints,
		Rounds:      make([]RoundBreakdown, 0, len(rounds)),
	}

	for _, rnd := range rounds {
		team, exists, err := s.rosterRepo.GetByUserAndRound(ctx, u.ID, rnd.Number)
		if err != nil {
			return DetailedStanding{}, fmt.Errorf("get roster user=%s round=%d: %w", u.ID, rnd.Number, err)
		}
		if !exists {
			row.Rounds = append(row.Rounds, RoundBreakdown{Round: rnd.Number, Players: []BreakdownEntry{}})
			continue
		}

		scores := scoresByRound[rnd.Number]
		entries := make([]BreakdownEntry, 0, len(team.PlayerIDs))
		for _, id := range team.PlayerIDs {
			pts := scores[id]
			isCaptain := team.CaptainID != nil && *team.CaptainID == id
			if isCaptain {
				pts *= 2
			}
			entries = append(entries, BreakdownEntry{
				ID:        id,
				Name:      nameByID[id],
				Points:    pts,
				IsCaptain: isCaptain,
			})
		}

		cfg := scoring.Config{
			TransferPenalty:       rnd.TransferPenalty,
			FreeTransfersPerRound: rnd.FreeTransfers,
		}
		row.Rounds = append(row.Rounds, RoundBreakdown{
			Round:         rnd.Number,
			Points:        scoring.RoundPoints(team.PlayerIDs, team.CaptainID, scores, team.TransfersUsed, cfg),
			TransfersUsed: team.TransfersUsed,
			Players:       entries,
			HasTeam:       true,
		})
	}

	return row, nil
}
