package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

func testCatalog() Catalog {
	return NewCatalog([]player.Player{
		{ID: 1, Name: "Alice", Price: 5_000_000, Qualified: true},
		{ID: 2, Name: "Bob", Price: 5_000_000, Qualified: true},
		{ID: 3, Name: "Carol", Price: 5_000_000, Qualified: true},
		{ID: 4, Name: "Dave", Price: 5_000_000, Qualified: true},
		{ID: 5, Name: "Erin", Price: 5_000_000, Qualified: true},
		{ID: 6, Name: "Frank", Price: 10_000_000, Qualified: true},
		{ID: 7, Name: "Grace", Price: 2_000_000, Qualified: true},
	})
}

func testRound(mutate ...func(*round.Round)) round.Round {
	budget := int64(30_000_000)
	r := round.Round{
		Number:          1,
		Deadline:        time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		TeamSize:        5,
		Budget:          &budget,
		FreeTransfers:   round.DefaultFreeTransfers,
		TransferPenalty: round.DefaultTransferPenalty,
	}
	for _, fn := range mutate {
		fn(&r)
	}
	return r
}

func TestSelect(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		roster   Roster
		playerID int64
		budget   int64
		wantErr  error
	}{
		{
			name:     "empty roster accepts",
			roster:   Roster{UserID: "u1", Round: 1},
			playerID: 1,
		},
		{
			name:     "unknown player",
			roster:   Roster{UserID: "u1", Round: 1},
			playerID: 99,
			wantErr:  ErrPlayerNotFound,
		},
		{
			name:     "duplicate selection",
			roster:   Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1}},
			playerID: 1,
			wantErr:  ErrPlayerAlreadySelected,
		},
		{
			name:     "exactly on budget accepts",
			roster:   Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4}},
			playerID: 6,
		},
		{
			name:     "over budget",
			roster:   Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4}},
			playerID: 6,
			budget:   25_000_000,
			wantErr:  ErrBudgetExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rnd := testRound()
			if tc.budget > 0 {
				rnd.Budget = &tc.budget
			}

			got, err := Select(tc.playerID, tc.roster, rnd, catalog)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Select() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() unexpected error: %v", err)
			}
			if !got.Contains(tc.playerID) {
				t.Fatalf("Select() roster missing player %d", tc.playerID)
			}
		})
	}
}

func TestSelect_FullTeamReportsTeamFullBeforeBudget(t *testing.T) {
	catalog := testCatalog()
	budget := int64(25_000_000)
	rnd := testRound(func(r *round.Round) { r.Budget = &budget })

	full := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4, 5}}

	// Player 6 would also exceed the budget, but the size limit wins.
	_, err := Select(6, full, rnd, catalog)
	if !errors.Is(err, ErrTeamFull) {
		t.Fatalf("Select() on full team error = %v, want %v", err, ErrTeamFull)
	}
}

func TestSelect_UnlimitedBudget(t *testing.T) {
	catalog := testCatalog()
	rnd := testRound(func(r *round.Round) { r.Budget = nil })

	r := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4}}
	got, err := Select(6, r, rnd, catalog)
	if err != nil {
		t.Fatalf("Select() with unlimited budget: %v", err)
	}
	if len(got.PlayerIDs) != 5 {
		t.Fatalf("Select() roster size = %d, want 5", len(got.PlayerIDs))
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	rnd := testRound()

	before := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2}}
	if _, err := Select(3, before, rnd, catalog); err != nil {
		t.Fatalf("Select(): %v", err)
	}
	if len(before.PlayerIDs) != 2 {
		t.Fatalf("input roster mutated: %v", before.PlayerIDs)
	}
}

func TestRemove(t *testing.T) {
	captain := int64(2)
	r := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3}, CaptainID: &captain}

	got, err := Remove(2, r)
	if err != nil {
		t.Fatalf("Remove(): %v", err)
	}
	if got.Contains(2) {
		t.Fatalf("Remove() player 2 still present: %v", got.PlayerIDs)
	}
	if got.CaptainID != nil {
		t.Fatalf("Remove() captain should be cleared, got %d", *got.CaptainID)
	}

	if _, err := Remove(99, r); !errors.Is(err, ErrPlayerNotInRoster) {
		t.Fatalf("Remove(99) error = %v, want %v", err, ErrPlayerNotInRoster)
	}
}

func TestRemove_NonCaptainKeepsCaptain(t *testing.T) {
	captain := int64(2)
	r := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3}, CaptainID: &captain}

	got, err := Remove(1, r)
	if err != nil {
		t.Fatalf("Remove(): %v", err)
	}
	if got.CaptainID == nil || *got.CaptainID != 2 {
		t.Fatalf("Remove() captain changed, got %v", got.CaptainID)
	}
}

func TestSetCaptain(t *testing.T) {
	r := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3}}

	id := int64(2)
	got, err := SetCaptain(&id, r)
	if err != nil {
		t.Fatalf("SetCaptain(): %v", err)
	}
	if got.CaptainID == nil || *got.CaptainID != 2 {
		t.Fatalf("SetCaptain() = %v, want 2", got.CaptainID)
	}

	cleared, err := SetCaptain(nil, got)
	if err != nil {
		t.Fatalf("SetCaptain(nil): %v", err)
	}
	if cleared.CaptainID != nil {
		t.Fatalf("SetCaptain(nil) should clear, got %d", *cleared.CaptainID)
	}

	outsider := int64(99)
	if _, err := SetCaptain(&outsider, r); !errors.Is(err, ErrPlayerNotInRoster) {
		t.Fatalf("SetCaptain(99) error = %v, want %v", err, ErrPlayerNotInRoster)
	}
}

func TestValidateForSave(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name    string
		roster  Roster
		round   round.Round
		wantErr []error
	}{
		{
			name:   "complete team passes",
			roster: Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4, 5}},
			round:  testRound(),
		},
		{
			name:    "too few players",
			roster:  Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2}},
			round:   testRound(),
			wantErr: []error{ErrIncompleteTeam},
		},
		{
			name:    "closed round",
			roster:  Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4, 5}},
			round:   testRound(func(r *round.Round) { r.IsClosed = true }),
			wantErr: []error{ErrRoundClosed},
		},
		{
			name:   "multiple violations collected",
			roster: Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 99}},
			round:  testRound(func(r *round.Round) { r.IsClosed = true }),
			wantErr: []error{
				ErrIncompleteTeam,
				ErrPlayerNotFound,
				ErrRoundClosed,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violations := ValidateForSave(tc.roster, tc.round, catalog)
			if len(violations) != len(tc.wantErr) {
				t.Fatalf("ValidateForSave() = %v, want %d violations", violations, len(tc.wantErr))
			}
			for i, want := range tc.wantErr {
				if !errors.Is(violations[i], want) {
					t.Fatalf("violation[%d] = %v, want %v", i, violations[i], want)
				}
			}
		})
	}
}

func TestRemainingBudget(t *testing.T) {
	catalog := testCatalog()
	rnd := testRound()

	r := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 7}}
	left, capped := RemainingBudget(r, rnd, catalog)
	if !capped {
		t.Fatal("RemainingBudget() capped = false, want true")
	}
	if left != 23_000_000 {
		t.Fatalf("RemainingBudget() = %d, want 23000000", left)
	}

	if _, capped := RemainingBudget(r, testRound(func(r *round.Round) { r.Budget = nil }), catalog); capped {
		t.Fatal("RemainingBudget() capped = true for unlimited round")
	}
}
