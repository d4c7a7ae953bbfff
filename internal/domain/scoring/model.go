package scoring

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid scoring config")

// PlayerScore is the per-round points awarded to a single player.
type PlayerScore struct {
	PlayerID int64
	Round    int
	Points   int
}

// Config holds the tunable scoring knobs. A single row applies globally.
type Config struct {
	CorrectAnswer         int `json:"correctAnswer"`
	WrongAnswer           int `json:"wrongAnswer"`
	TransferPenalty       int `json:"transferPenalty"`
	FreeTransfersPerRound int `json:"freeTransfersPerRound"`
}

func DefaultConfig() Config {
	return Config{
		CorrectAnswer:         5,
		WrongAnswer:           0,
		TransferPenalty:       30,
		FreeTransfersPerRound: 1,
	}
}

func (c Config) Validate() error {
	if c.TransferPenalty < 0 {
		return fmt.Errorf("%w: transferPenalty must be non-negative, got %d", ErrInvalidConfig, c.TransferPenalty)
	}
	if c.FreeTransfersPerRound < 0 {
		return fmt.Errorf("%w: freeTransfersPerRound must be non-negative, got %d", ErrInvalidConfig, c.FreeTransfersPerRound)
	}
	return nil
}

// RoundPoints sums a roster's points for one round. The captain's score is
// doubled; players without a score row contribute zero. The transfer penalty
// is subtracted afterwards and the result may go negative.
func RoundPoints(playerIDs []int64, captainID *int64, scores map[int64]int, transfersUsed int, cfg Config) int {
	total := 0
	for _, id := range playerIDs {
		pts := scores[id]
		if captainID != nil && *captainID == id {
			pts *= 2
		}
		total += pts
	}

	over := transfersUsed - cfg.FreeTransfersPerRound
	if over > 0 {
		total -= over * cfg.TransferPenalty
	}
	return total
}
