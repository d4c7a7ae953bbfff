package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/memory"
)

func newMatchFixture(t *testing.T) *MatchService {
	t.Helper()

	service := NewMatchService(
		memory.NewMatchRepository(memory.SeedMatches(testStart)),
		memory.NewRoundRepository(memory.SeedRounds(testStart)),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		discardLogger(),
	)
	service.now = func() time.Time { return testStart }
	return service
}

func TestMatchService_CreateMatch(t *testing.T) {
	service := newMatchFixture(t)

	created, err := service.CreateMatch(t.Context(), CreateMatchInput{
		Round:      1,
		Player1ID:  7,
		Player2ID:  8,
		MatchOrder: 4,
	})
	if err != nil {
		t.Fatalf("CreateMatch() failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateMatch() returned zero id")
	}

	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		Round:      99,
		Player1ID:  1,
		Player2ID:  2,
		MatchOrder: 1,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown round error = %v, want %v", err, ErrNotFound)
	}
}

func TestMatchService_CreateMatch_RejectsDuplicatePairing(t *testing.T) {
	service := newMatchFixture(t)

	// Seeded round 1 already pairs players 1 and 2; order is irrelevant.
	_, err := service.CreateMatch(t.Context(), CreateMatchInput{
		Round:      1,
		Player1ID:  2,
		Player2ID:  1,
		MatchOrder: 4,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate pairing error = %v, want %v", err, ErrConflict)
	}
	if !errors.Is(err, match.ErrDuplicatePairing) {
		t.Fatalf("duplicate pairing error = %v, want %v", err, match.ErrDuplicatePairing)
	}
}

func TestMatchService_CreateMatch_RejectsTakenOrder(t *testing.T) {
	service := newMatchFixture(t)

	// Seeded round 1 already has a match at order 2.
	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		Round:      1,
		Player1ID:  7,
		Player2ID:  8,
		MatchOrder: 2,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("taken order error = %v, want %v", err, ErrConflict)
	}

	// The same order is free in another round.
	if _, err := service.CreateMatch(t.Context(), CreateMatchInput{
		Round:      2,
		Player1ID:  7,
		Player2ID:  8,
		MatchOrder: 3,
	}); err != nil {
		t.Fatalf("CreateMatch() in other round failed: %v", err)
	}
}

func TestMatchService_UpdateMatch_RejectsTakenOrder(t *testing.T) {
	service := newMatchFixture(t)

	order := 2
	if _, err := service.UpdateMatch(t.Context(), 1, UpdateMatchInput{
		MatchOrder: &order,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("taken order error = %v, want %v", err, ErrConflict)
	}

	// Re-saving a match with its own order is not a collision.
	sameOrder := 1
	updated, err := service.UpdateMatch(t.Context(), 1, UpdateMatchInput{
		MatchOrder: &sameOrder,
	})
	if err != nil {
		t.Fatalf("UpdateMatch() with own order failed: %v", err)
	}
	if updated.MatchOrder != 1 {
		t.Fatalf("UpdateMatch() order = %d, want 1", updated.MatchOrder)
	}
}
