package roster

import "testing"

func TestRecordRemoval(t *testing.T) {
	tests := []struct {
		name          string
		transfersUsed int
		wantUsed      int
		wantDelta     int
	}{
		{name: "first removal is free", transfersUsed: 0, wantUsed: 1, wantDelta: 0},
		{name: "second removal costs", transfersUsed: 1, wantUsed: 2, wantDelta: -30},
		{name: "third removal costs again", transfersUsed: 2, wantUsed: 3, wantDelta: -30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			used, delta := RecordRemoval(tc.transfersUsed, 1, 30)
			if used != tc.wantUsed || delta != tc.wantDelta {
				t.Fatalf("RecordRemoval(%d, 1, 30) = (%d, %d), want (%d, %d)",
					tc.transfersUsed, used, delta, tc.wantUsed, tc.wantDelta)
			}
		})
	}
}

func TestNetTransferCount(t *testing.T) {
	tests := []struct {
		name     string
		baseline []int64
		current  []int64
		want     int
	}{
		{name: "identical", baseline: []int64{1, 2, 3}, current: []int64{1, 2, 3}, want: 0},
		{name: "reordered", baseline: []int64{1, 2, 3}, current: []int64{3, 1, 2}, want: 0},
		{name: "one swap", baseline: []int64{1, 2, 3}, current: []int64{1, 2, 4}, want: 1},
		{name: "two swaps", baseline: []int64{1, 2, 3}, current: []int64{4, 5, 3}, want: 2},
		{name: "empty baseline counts all", baseline: nil, current: []int64{1, 2}, want: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NetTransferCount(tc.baseline, tc.current); got != tc.want {
				t.Fatalf("NetTransferCount(%v, %v) = %d, want %d", tc.baseline, tc.current, got, tc.want)
			}
		})
	}
}

func TestPenaltyPoints(t *testing.T) {
	tests := []struct {
		name          string
		transfersUsed int
		want          int
	}{
		{name: "within allowance", transfersUsed: 0, want: 0},
		{name: "exactly allowance", transfersUsed: 1, want: 0},
		{name: "one over", transfersUsed: 2, want: 30},
		{name: "three over", transfersUsed: 4, want: 90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PenaltyPoints(tc.transfersUsed, 1, 30); got != tc.want {
				t.Fatalf("PenaltyPoints(%d, 1, 30) = %d, want %d", tc.transfersUsed, got, tc.want)
			}
		})
	}
}

// Removing a player and selecting them again leaves the roster identical
// but still burns one transfer.
func TestRemoveThenReAddBurnsTransfer(t *testing.T) {
	catalog := testCatalog()
	rnd := testRound()

	r := Roster{UserID: "u1", Round: 1, PlayerIDs: []int64{1, 2, 3, 4, 5}, TransfersUsed: 0}

	removed, err := Remove(3, r)
	if err != nil {
		t.Fatalf("Remove(): %v", err)
	}
	used, delta := RecordRemoval(removed.TransfersUsed, rnd.FreeTransfers, rnd.TransferPenalty)
	removed.TransfersUsed = used
	removed.TotalPoints += delta

	restored, err := Select(3, removed, rnd, catalog)
	if err != nil {
		t.Fatalf("Select(): %v", err)
	}

	if len(restored.PlayerIDs) != len(r.PlayerIDs) {
		t.Fatalf("roster size = %d, want %d", len(restored.PlayerIDs), len(r.PlayerIDs))
	}
	for _, id := range r.PlayerIDs {
		if !restored.Contains(id) {
			t.Fatalf("roster missing player %d after re-add", id)
		}
	}
	if restored.TransfersUsed != r.TransfersUsed+1 {
		t.Fatalf("TransfersUsed = %d, want %d", restored.TransfersUsed, r.TransfersUsed+1)
	}
	if restored.TotalPoints != r.TotalPoints {
		t.Fatalf("TotalPoints = %d, want %d (first transfer is free)", restored.TotalPoints, r.TotalPoints)
	}
}
