package usecase

import (
	"errors"
	"testing"

	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/domain/user"
	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/memory"
)

func newScoringFixture(t *testing.T, rosters []roster.Roster, users []user.User) (*ScoringService, *memory.RosterRepository, *memory.UserRepository) {
	t.Helper()

	rosterRepo := memory.NewRosterRepository(rosters)
	userRepo := memory.NewUserRepository(users)
	service := NewScoringService(
		memory.NewScoringRepository(),
		rosterRepo,
		memory.NewRoundRepository(memory.SeedRounds(testStart)),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		userRepo,
		discardLogger(),
	)
	return service, rosterRepo, userRepo
}

func TestScoringService_UpdateScoresRecomputesRosters(t *testing.T) {
	captain := int64(4)
	service, rosterRepo, userRepo := newScoringFixture(t,
		[]roster.Roster{
			{UserID: "alice", Round: 1, PlayerIDs: []int64{3, 4, 5, 6, 7}, CaptainID: &captain},
			{UserID: "bob", Round: 1, PlayerIDs: []int64{3, 5, 6, 7, 8}, TransfersUsed: 2},
		},
		[]user.User{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
		},
	)

	err := service.UpdateScores(t.Context(), 1, []ScoreEntry{
		{PlayerID: 3, Points: 5},
		{PlayerID: 4, Points: 5},
		{PlayerID: 5, Points: 0},
		{PlayerID: 6, Points: 5},
		{PlayerID: 7, Points: 5},
		{PlayerID: 8, Points: 0},
	})
	if err != nil {
		t.Fatalf("UpdateScores() failed: %v", err)
	}

	// Alice: 5 + 5*2 (captain) + 0 + 5 + 5 = 25, no transfers.
	alice, _, err := rosterRepo.GetByUserAndRound(t.Context(), "alice", 1)
	if err != nil {
		t.Fatalf("get alice roster: %v", err)
	}
	if alice.TotalPoints != 25 {
		t.Fatalf("alice TotalPoints = %d, want 25", alice.TotalPoints)
	}

	// Bob: 5 + 0 + 5 + 5 + 0 = 15, minus one paid transfer (2 used, 1 free).
	bob, _, err := rosterRepo.GetByUserAndRound(t.Context(), "bob", 1)
	if err != nil {
		t.Fatalf("get bob roster: %v", err)
	}
	if bob.TotalPoints != 15-30 {
		t.Fatalf("bob TotalPoints = %d, want -15", bob.TotalPoints)
	}

	aliceUser, _, err := userRepo.GetByID(t.Context(), "alice")
	if err != nil {
		t.Fatalf("get alice user: %v", err)
	}
	if aliceUser.TotalPoints != 25 {
		t.Fatalf("alice user total = %d, want 25", aliceUser.TotalPoints)
	}
}

func TestScoringService_UpdateScoresValidation(t *testing.T) {
	service, _, _ := newScoringFixture(t, nil, nil)

	if err := service.UpdateScores(t.Context(), 1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty scores error = %v, want %v", err, ErrInvalidInput)
	}
	if err := service.UpdateScores(t.Context(), 99, []ScoreEntry{{PlayerID: 3, Points: 5}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown round error = %v, want %v", err, ErrNotFound)
	}
	if err := service.UpdateScores(t.Context(), 1, []ScoreEntry{{PlayerID: 999, Points: 5}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown player error = %v, want %v", err, ErrNotFound)
	}
}

func TestScoringService_Config(t *testing.T) {
	service, _, _ := newScoringFixture(t, nil, nil)

	cfg, err := service.GetConfig(t.Context())
	if err != nil {
		t.Fatalf("GetConfig() failed: %v", err)
	}
	if cfg != scoring.DefaultConfig() {
		t.Fatalf("GetConfig() = %+v, want defaults", cfg)
	}

	cfg.TransferPenalty = 50
	saved, err := service.UpdateConfig(t.Context(), cfg)
	if err != nil {
		t.Fatalf("UpdateConfig() failed: %v", err)
	}
	if saved.TransferPenalty != 50 {
		t.Fatalf("saved TransferPenalty = %d, want 50", saved.TransferPenalty)
	}

	cfg.FreeTransfersPerRound = -1
	if _, err := service.UpdateConfig(t.Context(), cfg); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid config error = %v, want %v", err, ErrInvalidInput)
	}
}
