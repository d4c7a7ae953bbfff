package roster

// RecordRemoval accounts for one removal from an already-saved roster.
// The first free removals per round cost nothing; each one past the
// allowance deducts penalty points immediately. Returns the new
// transfers-used counter and the points delta (zero or negative).
func RecordRemoval(transfersUsed, freeTransfers, penalty int) (int, int) {
	delta := 0
	if transfersUsed >= freeTransfers {
		delta = -penalty
	}
	return transfersUsed + 1, delta
}

// NetTransferCount counts incoming players: ids present in current but not
// in baseline. Swapping a player out and back in the same save nets to zero.
func NetTransferCount(baseline, current []int64) int {
	seen := make(map[int64]struct{}, len(baseline))
	for _, id := range baseline {
		seen[id] = struct{}{}
	}

	n := 0
	for _, id := range current {
		if _, ok := seen[id]; !ok {
			n++
		}
	}
	return n
}

// PenaltyPoints is the total deduction for a round given the accumulated
// transfer counter.
func PenaltyPoints(transfersUsed, freeTransfers, penalty int) int {
	over := transfersUsed - freeTransfers
	if over <= 0 {
		return 0
	}
	return over * penalty
}
