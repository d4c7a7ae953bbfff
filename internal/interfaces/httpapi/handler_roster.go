package httpapi

import (
	"net/http"
	"strings"

	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

type saveTeamRequest struct {
	UserID          string  `json:"userId" validate:"required"`
	Round           int     `json:"round" validate:"required,min=1"`
	SelectedPlayers []int64 `json:"selectedPlayers" validate:"required,min=1"`
	CaptainID       *int64  `json:"captainId"`
}

type applyTransferRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Round    int    `json:"round" validate:"required,min=1"`
	PlayerID int64  `json:"playerId" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=add remove"`
}

type saveTeamResponse struct {
	Team           teamDTO `json:"team"`
	TransfersMade  int     `json:"transfersMade"`
	PenaltyApplied int     `json:"penaltyApplied"`
}

type applyTransferResponse struct {
	Team             teamDTO `json:"team"`
	TransfersUsed    int     `json:"transfersUsed"`
	PenaltyWillApply bool    `json:"penaltyWillApply"`
	PenaltyAmount    int     `json:"penaltyAmount"`
}

func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeam")
	defer span.End()

	var req saveTeamRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := requirePrincipal(ctx, req.UserID); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.SaveRoster(ctx, usecase.SaveRosterInput{
		UserID:    req.UserID,
		Round:     req.Round,
		PlayerIDs: req.SelectedPlayers,
		CaptainID: req.CaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed",
			"user_id", req.UserID, "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveTeamResponse{
		Team:           rosterToDTO(result.Roster),
		TransfersMade:  result.TransfersMade,
		PenaltyApplied: result.PenaltyApplied,
	})
}

// GetTeam returns the caller's team for a round. Admins may read another
// user's team through the userId query parameter.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	roundNumber, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	principal, err := requirePrincipal(ctx, "")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	targetUserID := principal.UserID
	if override := strings.TrimSpace(r.URL.Query().Get("userId")); override != "" {
		if _, err := requirePrincipal(ctx, override); err != nil {
			writeError(ctx, w, err)
			return
		}
		targetUserID = override
	}

	result, err := h.rosterService.GetRoster(ctx, targetUserID, roundNumber)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(result.Roster))
}

func (h *Handler) ApplyTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyTransfer")
	defer span.End()

	var req applyTransferRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := requirePrincipal(ctx, req.UserID); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.ApplyTransfer(ctx, usecase.ApplyTransferInput{
		UserID:   req.UserID,
		Round:    req.Round,
		PlayerID: req.PlayerID,
		Action:   usecase.TransferAction(req.Action),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply transfer failed",
			"user_id", req.UserID, "round", req.Round, "action", req.Action, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, applyTransferResponse{
		Team:             rosterToDTO(result.Roster),
		TransfersUsed:    result.TransfersUsed,
		PenaltyWillApply: result.PenaltyWillApply,
		PenaltyAmount:    result.PenaltyAmount,
	})
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	roundNumber, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	principal, err := requirePrincipal(ctx, "")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.rosterService.ListTransfers(ctx, principal.UserID, roundNumber)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]transferEventDTO, 0, len(events))
	for _, event := range events {
		items = append(items, transferEventToDTO(event))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
