package postgres

import (
	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/domain/user"
)

var (
	_ player.Repository  = (*PlayerRepository)(nil)
	_ round.Repository   = (*RoundRepository)(nil)
	_ roster.Repository  = (*RosterRepository)(nil)
	_ match.Repository   = (*MatchRepository)(nil)
	_ scoring.Repository = (*ScoringRepository)(nil)
	_ user.Repository    = (*UserRepository)(nil)
)
