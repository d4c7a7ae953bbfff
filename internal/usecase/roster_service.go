package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
)

// SaveRosterInput is the incoming payload for create/update team selection.
type SaveRosterInput struct {
	UserID    string
	Round     int
	PlayerIDs []int64
	CaptainID *int64
}

// SaveRosterResult reports what the save cost the user.
type SaveRosterResult struct {
	Roster         roster.Roster
	TransfersMade  int
	PenaltyApplied int
}

// GetRosterResult wraps a roster with its provenance: CarriedOver means the
// selection came from an earlier round and has not been saved for this one.
type GetRosterResult struct {
	Roster      roster.Roster
	CarriedOver bool
}

type RosterService struct {
	rosterRepo roster.Repository
	roundRepo  round.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	logger     *slog.Logger
	now        func() time.Time
}

func NewRosterService(
	rosterRepo roster.Repository,
	roundRepo round.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	logger *slog.Logger,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RosterService{
		rosterRepo: rosterRepo,
		roundRepo:  roundRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// GetRoster returns the user's roster for a round. When nothing was saved
// for that round yet, the most recent earlier roster is carried over with a
// fresh transfer counter so the client can show a starting point.
func (s *RosterService) GetRoster(ctx context.Context, userID string, roundNumber int) (GetRosterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetRoster")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return GetRosterResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	saved, exists, err := s.rosterRepo.GetByUserAndRound(ctx, userID, roundNumber)
	if err != nil {
		return GetRosterResult{}, fmt.Errorf("get roster: %w", err)
	}
	if exists {
		return GetRosterResult{Roster: saved}, nil
	}

	previous, exists, err := s.rosterRepo.GetLatestBefore(ctx, userID, roundNumber)
	if err != nil {
		return GetRosterResult{}, fmt.Errorf("get previous roster: %w", err)
	}
	if !exists {
		return GetRosterResult{}, fmt.Errorf("%w: no roster for user=%s round=%d", ErrNotFound, userID, roundNumber)
	}

	carried := previous
	carried.Round = roundNumber
	carried.TransfersUsed = 0
	carried.TotalPoints = 0
	carried.CarriedOver = true
	return GetRosterResult{Roster: carried, CarriedOver: true}, nil
}

// SaveRoster creates or updates the user's team for a round.
//
// Round 1 rosters lock after the first save. Later rounds accept resaves
// through the transfer system: each incoming player counts as one transfer,
// and transfers past the round's free allowance deduct penalty points.
func (s *RosterService) SaveRoster(ctx context.Context, input SaveRosterInput) (SaveRosterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SaveRoster")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return SaveRosterResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if hasDuplicateIDs(input.PlayerIDs) {
		return SaveRosterResult{}, fmt.Errorf("%w: cannot select the same player multiple times", ErrInvalidInput)
	}

	rnd, exists, err := s.roundRepo.GetByNumber(ctx, input.Round)
	if err != nil {
		return SaveRosterResult{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return SaveRosterResult{}, fmt.Errorf("%w: round=%d", ErrNotFound, input.Round)
	}

	now := s.now().UTC()
	if rnd.IsClosed {
		return SaveRosterResult{}, fmt.Errorf("%w: round %d", roster.ErrRoundClosed, rnd.Number)
	}
	if !now.Before(rnd.Deadline) {
		return SaveRosterResult{}, fmt.Errorf("%w: round %d deadline has passed", roster.ErrRoundClosed, rnd.Number)
	}

	// A round without a fixture list is not open for selection yet.
	matchCount, err := s.matchRepo.CountByRound(ctx, input.Round)
	if err != nil {
		return SaveRosterResult{}, fmt.Errorf("count matches by round: %w", err)
	}
	if matchCount == 0 {
		return SaveRosterResult{}, fmt.Errorf("%w: round %d has no matches yet", roster.ErrRoundNotOpen, rnd.Number)
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return SaveRosterResult{}, err
	}

	incoming := roster.Roster{
		UserID:    input.UserID,
		Round:     input.Round,
		PlayerIDs: append([]int64(nil), input.PlayerIDs...),
		CaptainID: input.CaptainID,
		UpdatedAt: now,
	}
	if violations := roster.ValidateForSave(incoming, rnd, catalog); len(violations) > 0 {
		return SaveRosterResult{}, fmt.Errorf("validate roster: %w", errors.Join(violations...))
	}

	existing, exists, err := s.rosterRepo.GetByUserAndRound(ctx, input.UserID, input.Round)
	if err != nil {
		return SaveRosterResult{}, fmt.Errorf("get existing roster: %w", err)
	}

	if !exists {
		saved, err := s.rosterRepo.Upsert(ctx, incoming)
		if err != nil {
			return SaveRosterResult{}, fmt.Errorf("upsert roster: %w", err)
		}
		s.logger.InfoContext(ctx, "roster created",
			slog.String("user_id", input.UserID),
			slog.Int("round", input.Round),
		)
		return SaveRosterResult{Roster: saved}, nil
	}

	if input.Round == 1 {
		return SaveRosterResult{}, fmt.Errorf("%w: round 1 team is locked after first save", ErrConflict)
	}

	transfersMade := roster.NetTransferCount(existing.PlayerIDs, input.PlayerIDs)
	if transfersMade == 0 && captainEqual(existing.CaptainID, input.CaptainID) {
		return SaveRosterResult{}, fmt.Errorf("%w: no changes detected", ErrConflict)
	}

	totalTransfers := existing.TransfersUsed + transfersMade
	penaltyBefore := roster.PenaltyPoints(existing.TransfersUsed, rnd.FreeTransfers, rnd.TransferPenalty)
	penaltyAfter := roster.PenaltyPoints(totalTransfers, rnd.FreeTransfers, rnd.TransferPenalty)
	penaltyDelta := penaltyAfter - penaltyBefore

	incoming.TransfersUsed = totalTransfers
	incoming.TotalPoints = existing.TotalPoints - penaltyDelta

	saved, err := s.rosterRepo.Upsert(ctx, incoming)
	if err != nil {
		return SaveRosterResult{}, fmt.Errorf("upsert roster: %w", err)
	}

	if err := s.recordTransfers(ctx, existing, saved, penaltyDelta, now); err != nil {
		s.logger.WarnContext(ctx, "transfer audit write failed", slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "roster updated",
		slog.String("user_id", input.UserID),
		slog.Int("round", input.Round),
		slog.Int("transfers_made", transfersMade),
		slog.Int("transfers_total", totalTransfers),
		slog.Int("penalty_applied", penaltyDelta),
	)
	return SaveRosterResult{
		Roster:         saved,
		TransfersMade:  transfersMade,
		PenaltyApplied: penaltyDelta,
	}, nil
}

type TransferAction string

const (
	TransferActionAdd    TransferAction = "add"
	TransferActionRemove TransferAction = "remove"
)

// ApplyTransferInput is a single incremental change to a saved roster.
type ApplyTransferInput struct {
	UserID   string
	Round    int
	PlayerID int64
	Action   TransferAction
}

type ApplyTransferResult struct {
	Roster           roster.Roster
	TransfersUsed    int
	PenaltyWillApply bool
	PenaltyAmount    int
}

// ApplyTransfer adds or removes a single player on an already saved roster.
// Every call burns one transfer regardless of direction, so a remove followed
// by a re-add costs two.
func (s *RosterService) ApplyTransfer(ctx context.Context, input ApplyTransferInput) (ApplyTransferResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ApplyTransfer")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return ApplyTransferResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Action != TransferActionAdd && input.Action != TransferActionRemove {
		return ApplyTransferResult{}, fmt.Errorf("%w: unknown transfer action %q", ErrInvalidInput, input.Action)
	}

	rnd, exists, err := s.roundRepo.GetByNumber(ctx, input.Round)
	if err != nil {
		return ApplyTransferResult{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return ApplyTransferResult{}, fmt.Errorf("%w: round=%d", ErrNotFound, input.Round)
	}

	now := s.now().UTC()
	if !rnd.IsOpen(now) {
		return ApplyTransferResult{}, fmt.Errorf("%w: round %d", roster.ErrRoundClosed, rnd.Number)
	}

	existing, exists, err := s.rosterRepo.GetByUserAndRound(ctx, input.UserID, input.Round)
	if err != nil {
		return ApplyTransferResult{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		return ApplyTransferResult{}, fmt.Errorf("%w: no roster for user=%s round=%d", ErrNotFound, input.UserID, input.Round)
	}

	var changed roster.Roster
	switch input.Action {
	case TransferActionAdd:
		catalog, err := s.loadCatalog(ctx)
		if err != nil {
			return ApplyTransferResult{}, err
		}
		changed, err = roster.Select(input.PlayerID, existing, rnd, catalog)
		if err != nil {
			return ApplyTransferResult{}, fmt.Errorf("add player: %w", err)
		}
	case TransferActionRemove:
		changed, err = roster.Remove(input.PlayerID, existing)
		if err != nil {
			return ApplyTransferResult{}, fmt.Errorf("remove player: %w", err)
		}
	}

	penaltyBefore := roster.PenaltyPoints(existing.TransfersUsed, rnd.FreeTransfers, rnd.TransferPenalty)
	penaltyAfter := roster.PenaltyPoints(existing.TransfersUsed+1, rnd.FreeTransfers, rnd.TransferPenalty)
	penaltyDelta := penaltyAfter - penaltyBefore

	changed.TransfersUsed = existing.TransfersUsed + 1
	changed.TotalPoints = existing.TotalPoints - penaltyDelta
	changed.UpdatedAt = now

	saved, err := s.rosterRepo.Upsert(ctx, changed)
	if err != nil {
		return ApplyTransferResult{}, fmt.Errorf("upsert roster: %w", err)
	}

	event := roster.TransferEvent{
		UserID:      saved.UserID,
		Round:       saved.Round,
		PointsDelta: -penaltyDelta,
		CreatedAt:   now,
	}
	if input.Action == TransferActionAdd {
		event.PlayerInID = input.PlayerID
	} else {
		event.PlayerOutID = input.PlayerID
	}
	if _, err := s.rosterRepo.AppendTransfer(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "transfer audit write failed", slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "transfer applied",
		slog.String("user_id", saved.UserID),
		slog.Int("round", saved.Round),
		slog.String("action", string(input.Action)),
		slog.Int64("player_id", input.PlayerID),
		slog.Int("penalty_applied", penaltyDelta),
	)
	return ApplyTransferResult{
		Roster:           saved,
		TransfersUsed:    saved.TransfersUsed,
		PenaltyWillApply: penaltyDelta > 0,
		PenaltyAmount:    penaltyDelta,
	}, nil
}

// ListTransfers returns the audit trail for a user's round.
func (s *RosterService) ListTransfers(ctx context.Context, userID string, roundNumber int) ([]roster.TransferEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListTransfers")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	events, err := s.rosterRepo.ListTransfers(ctx, userID, roundNumber)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return events, nil
}

func (s *RosterService) loadCatalog(ctx context.Context) (roster.Catalog, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return roster.NewCatalog(players), nil
}

// recordTransfers pairs outgoing and incoming players positionally for the
// audit log. The pairing is cosmetic; only the count is load-bearing.
func (s *RosterService) recordTransfers(ctx context.Context, before, after roster.Roster, penaltyDelta int, now time.Time) error {
	out := diffIDs(before.PlayerIDs, after.PlayerIDs)
	in := diffIDs(after.PlayerIDs, before.PlayerIDs)

	for i, inID := range in {
		var outID int64
		if i < len(out) {
			outID = out[i]
		}
		delta := 0
		if i == 0 {
			delta = -penaltyDelta
		}
		_, err := s.rosterRepo.AppendTransfer(ctx, roster.TransferEvent{
			UserID:      after.UserID,
			Round:       after.Round,
			PlayerOutID: outID,
			PlayerInID:  inID,
			PointsDelta: delta,
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("append transfer: %w", err)
		}
	}
	return nil
}

// diffIDs returns ids present in a but not in b, preserving a's order.
func diffIDs(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(b))
	for _, id := range b {
		seen[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func hasDuplicateIDs(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func captainEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
