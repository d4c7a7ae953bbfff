package player

import (
	"fmt"
	"strings"
)

const (
	MinNameLength = 2
	MaxNameLength = 100
	MinPrice      = 1_000_000
	MaxPrice      = 1_000_000_000
	MinPoints     = -1000
	MaxPoints     = 10000
)

// Player is a selectable competitor in the pool. Prices are stored in the
// smallest currency unit; admins manage the pool, users only reference it.
type Player struct {
	ID        int64
	Name      string
	Price     int64
	Qualified bool
	Points    int
}

func (p Player) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidatePrice(p.Price); err != nil {
		return err
	}
	if err := ValidatePoints(p.Points); err != nil {
		return err
	}

	return nil
}

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("player name cannot be empty")
	}
	if len(trimmed) < MinNameLength {
		return fmt.Errorf("player name must be at least %d characters", MinNameLength)
	}
	if len(trimmed) > MaxNameLength {
		return fmt.Errorf("player name cannot exceed %d characters", MaxNameLength)
	}

	return nil
}

func ValidatePrice(price int64) error {
	if price < MinPrice {
		return fmt.Errorf("player price must be at least %d", MinPrice)
	}
	if price > MaxPrice {
		return fmt.Errorf("player price cannot exceed %d", MaxPrice)
	}

	return nil
}

func ValidatePoints(points int) error {
	if points < MinPoints {
		return fmt.Errorf("points cannot be less than %d", MinPoints)
	}
	if points > MaxPoints {
		return fmt.Errorf("points cannot exceed %d", MaxPoints)
	}

	return nil
}
