package roster

import (
	"errors"
	"fmt"

	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

var (
	ErrPlayerNotFound        = errors.New("player not found in catalog")
	ErrPlayerAlreadySelected = errors.New("player already selected")
	ErrPlayerNotInRoster     = errors.New("player not in roster")
	ErrTeamFull              = errors.New("team is full")
	ErrBudgetExceeded        = errors.New("budget exceeded")
	ErrRoundClosed           = errors.New("round is closed")
	ErrRoundNotOpen          = errors.New("round is not open for selection")
	ErrIncompleteTeam        = errors.New("incomplete team")
)

// CanSelect is the pure predicate behind Select.
func CanSelect(playerID int64, r Roster, rnd round.Round, catalog Catalog) bool {
	_, err := Select(playerID, r, rnd, catalog)
	return err == nil
}

// Select appends playerID to the roster, preserving insertion order. Order is
// display-only; no constraint depends on it. The size check runs before the
// budget check, so a full team reports ErrTeamFull even when the candidate
// would also blow the budget.
func Select(playerID int64, r Roster, rnd round.Round, catalog Catalog) (Roster, error) {
	candidate, ok := catalog[playerID]
	if !ok {
		return Roster{}, fmt.Errorf("%w: id=%d", ErrPlayerNotFound, playerID)
	}
	if r.Contains(playerID) {
		return Roster{}, fmt.Errorf("%w: id=%d", ErrPlayerAlreadySelected, playerID)
	}
	if len(r.PlayerIDs) >= rnd.TeamSize {
		return Roster{}, fmt.Errorf("%w: limit=%d", ErrTeamFull, rnd.TeamSize)
	}
	if !rnd.Unlimited() {
		if cost := r.TotalCost(catalog) + candidate.Price; cost > *rnd.Budget {
			return Roster{}, fmt.Errorf("%w: cap=%d cost=%d", ErrBudgetExceeded, *rnd.Budget, cost)
		}
	}

	updated := r.clone()
	updated.PlayerIDs = append(updated.PlayerIDs, playerID)
	return updated, nil
}

// Remove drops playerID from the selection; the captain slot is cleared when
// the captain leaves. Transfer accounting is the caller's concern, a removal
// from a saved roster is what potentially becomes a transfer.
func Remove(playerID int64, r Roster) (Roster, error) {
	if !r.Contains(playerID) {
		return Roster{}, fmt.Errorf("%w: id=%d", ErrPlayerNotInRoster, playerID)
	}

	updated := r.clone()
	kept := updated.PlayerIDs[:0]
	for _, id := range updated.PlayerIDs {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	updated.PlayerIDs = kept
	if updated.CaptainID != nil && *updated.CaptainID == playerID {
		updated.CaptainID = nil
	}

	return updated, nil
}

// SetCaptain assigns the captain. Nil clears unconditionally; re-assigning
// the current captain is a no-op success.
func SetCaptain(playerID *int64, r Roster) (Roster, error) {
	updated := r.clone()
	if playerID == nil {
		updated.CaptainID = nil
		return updated, nil
	}
	if !r.Contains(*playerID) {
		return Roster{}, fmt.Errorf("%w: id=%d", ErrPlayerNotInRoster, *playerID)
	}

	captain := *playerID
	updated.CaptainID = &captain
	return updated, nil
}

// ValidateForSave collects every violated save precondition instead of
// stopping at the first, so callers can present the complete list.
func ValidateForSave(r Roster, rnd round.Round, catalog Catalog) []error {
	var violations []error

	if len(r.PlayerIDs) != rnd.TeamSize {
		violations = append(violations, fmt.Errorf("%w: need exactly %d players, have %d", ErrIncompleteTeam, rnd.TeamSize, len(r.PlayerIDs)))
	}
	for _, id := range r.PlayerIDs {
		if _, ok := catalog[id]; !ok {
			violations = append(violations, fmt.Errorf("%w: id=%d", ErrPlayerNotFound, id))
		}
	}
	if r.CaptainID != nil && !r.Contains(*r.CaptainID) {
		violations = append(violations, fmt.Errorf("%w: captain id=%d", ErrPlayerNotInRoster, *r.CaptainID))
	}
	if !rnd.Unlimited() {
		if cost := r.TotalCost(catalog); cost > *rnd.Budget {
			violations = append(violations, fmt.Errorf("%w: cap=%d cost=%d", ErrBudgetExceeded, *rnd.Budget, cost))
		}
	}
	if rnd.IsClosed {
		violations = append(violations, fmt.Errorf("%w: round %d", ErrRoundClosed, rnd.Number))
	}

	return violations
}

// RemainingBudget reports the budget still available for this roster.
// The second return is false when the round has no budget cap.
func RemainingBudget(r Roster, rnd round.Round, catalog Catalog) (int64, bool) {
	if rnd.Unlimited() {
		return 0, false
	}
	return *rnd.Budget - r.TotalCost(catalog), true
}
