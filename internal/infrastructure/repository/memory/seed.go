package memory

import (
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Name: "Ahmed Khalil", Price: 12_000_000, Qualified: true},
		{ID: 2, Name: "Omar Farouk", Price: 10_500_000, Qualified: true},
		{ID: 3, Name: "Yousef Hamdan", Price: 9_000_000, Qualified: true},
		{ID: 4, Name: "Khaled Mansour", Price: 8_500_000, Qualified: true},
		{ID: 5, Name: "Tariq Aziz", Price: 8_000_000, Qualified: true},
		{ID: 6, Name: "Samir Haddad", Price: 7_500_000, Qualified: true},
		{ID: 7, Name: "Nabil Rashid", Price: 7_000_000, Qualified: true},
		{ID: 8, Name: "Faris Jaber", Price: 6_500_000, Qualified: true},
		{ID: 9, Name: "Ziad Qasem", Price: 6_000_000, Qualified: true},
		{ID: 10, Name: "Hassan Odeh", Price: 5_500_000, Qualified: false},
		{ID: 11, Name: "Majed Salem", Price: 5_000_000, Qualified: true},
		{ID: 12, Name: "Rami Suleiman", Price: 4_500_000, Qualified: true},
	}
}

func SeedRounds(now time.Time) []round.Round {
	budget := int64(40_000_000)
	return []round.Round{
		{
			Number:          1,
			Deadline:        now.Add(72 * time.Hour),
			TeamSize:        5,
			Budget:          &budget,
			FreeTransfers:   round.DefaultFreeTransfers,
			TransferPenalty: round.DefaultTransferPenalty,
			CreatedAt:       now,
		},
		{
			Number:          2,
			Deadline:        now.Add(168 * time.Hour),
			TeamSize:        5,
			Budget:          &budget,
			FreeTransfers:   round.DefaultFreeTransfers,
			TransferPenalty: round.DefaultTransferPenalty,
			CreatedAt:       now,
		},
	}
}

func SeedMatches(now time.Time) []match.Match {
	return []match.Match{
		{ID: 1, Round: 1, Player1ID: 1, Player2ID: 2, MatchOrder: 1, CreatedAt: now},
		{ID: 2, Round: 1, Player1ID: 3, Player2ID: 4, MatchOrder: 2, CreatedAt: now},
		{ID: 3, Round: 1, Player1ID: 5, Player2ID: 6, MatchOrder: 3, CreatedAt: now},
		{ID: 4, Round: 2, Player1ID: 1, Player2ID: 3, MatchOrder: 1, CreatedAt: now},
		{ID: 5, Round: 2, Player1ID: 2, Player2ID: 4, MatchOrder: 2, CreatedAt: now},
	}
}
