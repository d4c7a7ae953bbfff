package scoring

import "testing"

func TestRoundPoints(t *testing.T) {
	cfg := DefaultConfig()
	captain := int64(2)

	tests := []struct {
		name          string
		playerIDs     []int64
		captainID     *int64
		scores        map[int64]int
		transfersUsed int
		want          int
	}{
		{
			name:      "captain doubled",
			playerIDs: []int64{1, 2, 3},
			captainID: &captain,
			scores:    map[int64]int{1: 5, 2: 5, 3: 5},
			want:      20,
		},
		{
			name:      "no captain",
			playerIDs: []int64{1, 2, 3},
			scores:    map[int64]int{1: 5, 2: 5, 3: 5},
			want:      15,
		},
		{
			name:      "missing scores count zero",
			playerIDs: []int64{1, 2, 3},
			captainID: &captain,
			scores:    map[int64]int{1: 5},
			want:      5,
		},
		{
			name:          "penalty applied past free allowance",
			playerIDs:     []int64{1, 2, 3},
			scores:        map[int64]int{1: 5, 2: 5, 3: 5},
			transfersUsed: 3,
			want:          15 - 2*30,
		},
		{
			name:          "single transfer free",
			playerIDs:     []int64{1},
			scores:        map[int64]int{1: 5},
			transfersUsed: 1,
			want:          5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundPoints(tc.playerIDs, tc.captainID, tc.scores, tc.transfersUsed, cfg)
			if got != tc.want {
				t.Fatalf("RoundPoints() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	bad := Config{TransferPenalty: -1, FreeTransfersPerRound: 1}
	if err := bad.Validate(); err == nil {
		t.Fatal("Validate() accepted negative transferPenalty")
	}
}
