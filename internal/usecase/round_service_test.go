package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/memory"
)

type recordingCalculator struct {
	calls []int
	err   error
}

func (c *recordingCalculator) CalculateRoundPoints(_ context.Context, roundNumber int) error {
	c.calls = append(c.calls, roundNumber)
	return c.err
}

func newRoundFixture(t *testing.T, rosterRepo *memory.RosterRepository) (*RoundService, *recordingCalculator) {
	t.Helper()

	if rosterRepo == nil {
		rosterRepo = memory.NewRosterRepository(nil)
	}
	calculator := &recordingCalculator{}
	service := NewRoundService(
		memory.NewRoundRepository(memory.SeedRounds(testStart)),
		rosterRepo,
		memory.NewMatchRepository(memory.SeedMatches(testStart)),
		memory.NewScoringRepository(),
		calculator,
		discardLogger(),
	)
	service.now = func() time.Time { return testStart.Add(time.Hour) }
	return service, calculator
}

func TestRoundService_CurrentRound(t *testing.T) {
	service, _ := newRoundFixture(t, nil)

	current, err := service.CurrentRound(t.Context())
	if err != nil {
		t.Fatalf("CurrentRound() failed: %v", err)
	}
	if current.Number != 1 {
		t.Fatalf("CurrentRound() = %d, want 1", current.Number)
	}

	// Past the first deadline the second round takes over.
	service.now = func() time.Time { return testStart.Add(80 * time.Hour) }
	current, err = service.CurrentRound(t.Context())
	if err != nil {
		t.Fatalf("CurrentRound() failed: %v", err)
	}
	if current.Number != 2 {
		t.Fatalf("CurrentRound() = %d, want 2", current.Number)
	}

	// All deadlines passed: the last round stays current.
	service.now = func() time.Time { return testStart.Add(1000 * time.Hour) }
	current, err = service.CurrentRound(t.Context())
	if err != nil {
		t.Fatalf("CurrentRound() failed: %v", err)
	}
	if current.Number != 2 {
		t.Fatalf("CurrentRound() after all deadlines = %d, want 2", current.Number)
	}
}

func TestRoundService_CreateRound(t *testing.T) {
	service, _ := newRoundFixture(t, nil)

	created, err := service.CreateRound(t.Context(), CreateRoundInput{
		Number:   3,
		Deadline: testStart.Add(300 * time.Hour),
		TeamSize: 5,
	})
	if err != nil {
		t.Fatalf("CreateRound() failed: %v", err)
	}
	if created.Budget != nil {
		t.Fatalf("CreateRound() budget = %v, want unlimited", *created.Budget)
	}
	if created.FreeTransfers != 1 || created.TransferPenalty != 30 {
		t.Fatalf("CreateRound() defaults = free %d penalty %d, want 1 and 30",
			created.FreeTransfers, created.TransferPenalty)
	}

	if _, err := service.CreateRound(t.Context(), CreateRoundInput{
		Number:   1,
		Deadline: testStart.Add(300 * time.Hour),
		TeamSize: 5,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate CreateRound() error = %v, want %v", err, ErrConflict)
	}

	if _, err := service.CreateRound(t.Context(), CreateRoundInput{
		Number:   4,
		Deadline: testStart.Add(300 * time.Hour),
		TeamSize: 0,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero team size error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestRoundService_CreateRound_SeedsStoredTransferConfig(t *testing.T) {
	scoringRepo := memory.NewScoringRepository()
	if _, err := scoringRepo.SaveConfig(t.Context(), scoring.Config{
		CorrectAnswer:         3,
		WrongAnswer:           -1,
		TransferPenalty:       10,
		FreeTransfersPerRound: 5,
	}); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	service := NewRoundService(
		memory.NewRoundRepository(nil),
		memory.NewRosterRepository(nil),
		memory.NewMatchRepository(nil),
		scoringRepo,
		&recordingCalculator{},
		discardLogger(),
	)
	service.now = func() time.Time { return testStart }

	created, err := service.CreateRound(t.Context(), CreateRoundInput{
		Number:   1,
		Deadline: testStart.Add(48 * time.Hour),
		TeamSize: 5,
	})
	if err != nil {
		t.Fatalf("CreateRound() failed: %v", err)
	}
	if created.FreeTransfers != 5 || created.TransferPenalty != 10 {
		t.Fatalf("CreateRound() transfer config = free %d penalty %d, want 5 and 10",
			created.FreeTransfers, created.TransferPenalty)
	}

	free, penalty := 2, 45
	updated, err := service.UpdateRound(t.Context(), 1, UpdateRoundInput{
		FreeTransfers:   &free,
		TransferPenalty: &penalty,
	})
	if err != nil {
		t.Fatalf("UpdateRound() failed: %v", err)
	}
	if updated.FreeTransfers != 2 || updated.TransferPenalty != 45 {
		t.Fatalf("UpdateRound() transfer config = free %d penalty %d, want 2 and 45",
			updated.FreeTransfers, updated.TransferPenalty)
	}
}

func TestRoundService_DeleteRound(t *testing.T) {
	rosterRepo := memory.NewRosterRepository([]roster.Roster{
		{UserID: "user-1", Round: 1, PlayerIDs: []int64{3, 4, 5, 6, 7}},
	})
	service, _ := newRoundFixture(t, rosterRepo)

	if err := service.DeleteRound(t.Context(), 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("DeleteRound() with teams error = %v, want %v", err, ErrConflict)
	}

	if err := service.DeleteRound(t.Context(), 2); err != nil {
		t.Fatalf("DeleteRound() failed: %v", err)
	}
	if _, err := service.GetRound(t.Context(), 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetRound() after delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestRoundService_CloseRound(t *testing.T) {
	service, calculator := newRoundFixture(t, nil)

	closed, err := service.CloseRound(t.Context(), 1)
	if err != nil {
		t.Fatalf("CloseRound() failed: %v", err)
	}
	if !closed.IsClosed {
		t.Fatal("CloseRound() IsClosed = false")
	}
	if len(calculator.calls) != 1 || calculator.calls[0] != 1 {
		t.Fatalf("calculator calls = %v, want [1]", calculator.calls)
	}

	if _, err := service.CloseRound(t.Context(), 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("double close error = %v, want %v", err, ErrConflict)
	}

	// Manually closing a round whose deadline already passed is pointless;
	// the processor handles those.
	service.now = func() time.Time { return testStart.Add(1000 * time.Hour) }
	if _, err := service.CloseRound(t.Context(), 2); !errors.Is(err, ErrConflict) {
		t.Fatalf("close after deadline error = %v, want %v", err, ErrConflict)
	}
}
