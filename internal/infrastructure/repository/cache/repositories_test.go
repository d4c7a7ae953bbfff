package cache

import (
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

var (
	_ player.Repository = (*PlayerRepository)(nil)
	_ round.Repository  = (*RoundRepository)(nil)
)
