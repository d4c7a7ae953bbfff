package round

import (
	"errors"
	"testing"
	"time"
)

func TestCurrentRound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name   string
		rounds []Round
		want   int
	}{
		{
			name: "first future deadline wins",
			rounds: []Round{
				{Number: 1, Deadline: yesterday},
				{Number: 2, Deadline: tomorrow},
				{Number: 3, Deadline: nextWeek},
			},
			want: 2,
		},
		{
			name: "admin-closed round is skipped even before deadline",
			rounds: []Round{
				{Number: 1, Deadline: tomorrow, IsClosed: true},
				{Number: 2, Deadline: nextWeek},
			},
			want: 2,
		},
		{
			name: "all deadlines passed falls back to last round",
			rounds: []Round{
				{Number: 1, Deadline: yesterday.Add(-48 * time.Hour)},
				{Number: 2, Deadline: yesterday},
			},
			want: 2,
		},
		{
			name: "single expired round still resolves to itself",
			rounds: []Round{
				{Number: 1, Deadline: yesterday},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentRound(tt.rounds, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Number != tt.want {
				t.Fatalf("expected round %d, got %d", tt.want, got.Number)
			}
		})
	}
}

func TestCurrentRound_EmptyList(t *testing.T) {
	_, err := CurrentRound(nil, time.Now())
	if !errors.Is(err, ErrNoCurrentRound) {
		t.Fatalf("expected ErrNoCurrentRound, got %v", err)
	}
}

func TestRound_IsOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	open := Round{Number: 1, Deadline: now.Add(time.Hour)}
	if !open.IsOpen(now) {
		t.Fatalf("expected round with future deadline to be open")
	}
	if open.State(now) != StateOpen {
		t.Fatalf("expected OPEN state, got %s", open.State(now))
	}

	pastDeadline := Round{Number: 1, Deadline: now.Add(-time.Minute)}
	if pastDeadline.IsOpen(now) {
		t.Fatalf("expected round past deadline to be closed")
	}

	adminClosed := Round{Number: 1, Deadline: now.Add(time.Hour), IsClosed: true}
	if adminClosed.IsOpen(now) {
		t.Fatalf("expected admin-closed round to be closed regardless of deadline")
	}
	if adminClosed.State(now) != StateClosed {
		t.Fatalf("expected CLOSED state, got %s", adminClosed.State(now))
	}
}
