package round

import (
	"fmt"
	"time"
)

const (
	MinNumber              = 1
	MaxNumber              = 100
	MinTeamSize            = 1
	MaxTeamSize            = 50
	MinBudget              = 1_000_000
	DefaultFreeTransfers   = 1
	DefaultTransferPenalty = 30
)

// Round is a time-boxed competition period with its own squad-size, budget,
// and transfer rules. Budget nil means unlimited.
type Round struct {
	Number          int
	Deadline        time.Time
	TeamSize        int
	Budget          *int64
	IsClosed        bool
	FreeTransfers   int
	TransferPenalty int
	CreatedAt       time.Time
}

// State of a round relative to a point in time.
type State string

const (
	StateScheduled State = "SCHEDULED"
	StateOpen      State = "OPEN"
	StateClosed    State = "CLOSED"
)

// IsOpen reports whether the round accepts roster mutations: the admin flag
// and the deadline are both checked, either alone closes the round.
func (r Round) IsOpen(now time.Time) bool {
	return !r.IsClosed && now.Before(r.Deadline)
}

// State maps the round onto its lifecycle. There is no transition back to
// OPEN once a round is CLOSED.
func (r Round) State(now time.Time) State {
	if r.IsClosed || !now.Before(r.Deadline) {
		return StateClosed
	}
	return StateOpen
}

// Unlimited reports whether the round has no budget cap.
func (r Round) Unlimited() bool {
	return r.Budget == nil
}

func (r Round) Validate() error {
	if err := ValidateNumber(r.Number); err != nil {
		return err
	}
	if err := ValidateTeamSize(r.TeamSize); err != nil {
		return err
	}
	if r.Budget != nil {
		if err := ValidateBudget(*r.Budget); err != nil {
			return err
		}
	}
	if r.Deadline.IsZero() {
		return fmt.Errorf("round deadline is required")
	}
	if r.FreeTransfers < 0 {
		return fmt.Errorf("free transfers must be a non-negative integer")
	}
	if r.TransferPenalty < 0 {
		return fmt.Errorf("transfer penalty must be a non-negative integer")
	}

	return nil
}

func ValidateNumber(n int) error {
	if n < MinNumber {
		return fmt.Errorf("round number must be at least %d", MinNumber)
	}
	if n > MaxNumber {
		return fmt.Errorf("round number cannot exceed %d", MaxNumber)
	}

	return nil
}

func ValidateTeamSize(size int) error {
	if size < MinTeamSize {
		return fmt.Errorf("team size must be at least %d", MinTeamSize)
	}
	if size > MaxTeamSize {
		return fmt.Errorf("team size cannot exceed %d", MaxTeamSize)
	}

	return nil
}

func ValidateBudget(budget int64) error {
	if budget < MinBudget {
		return fmt.Errorf("budget must be at least %d", MinBudget)
	}

	return nil
}
