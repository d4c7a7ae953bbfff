package round

import (
	"errors"
	"time"
)

// ErrNoCurrentRound is returned when no round can be resolved at all.
var ErrNoCurrentRound = errors.New("no current round available")

// CurrentRound resolves the active round from a list ordered by round number:
// the first round that is not admin-closed and whose deadline is still in the
// future. When every deadline has passed, the last round in the list carries
// over so late viewers still land on the final standings.
func CurrentRound(rounds []Round, now time.Time) (Round, error) {
	if len(rounds) == 0 {
		return Round{}, ErrNoCurrentRound
	}

	for _, r := range rounds {
		if r.IsClosed {
			continue
		}
		if now.Before(r.Deadline) {
			return r, nil
		}
	}

	return rounds[len(rounds)-1], nil
}
