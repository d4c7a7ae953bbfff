package httpapi

import (
	"net/http"

	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

type createMatchRequest struct {
	Round      int   `json:"round" validate:"required,min=1"`
	Player1ID  int64 `json:"player1Id" validate:"required"`
	Player2ID  int64 `json:"player2Id" validate:"required"`
	MatchOrder int   `json:"matchOrder" validate:"required,min=1"`
}

type updateMatchRequest struct {
	Player1ID  *int64 `json:"player1Id"`
	Player2ID  *int64 `json:"player2Id"`
	MatchOrder *int   `json:"matchOrder" validate:"omitempty,min=1"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	roundNumber, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListMatches(ctx, roundNumber)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "round", roundNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		Round:      req.Round,
		Player1ID:  req.Player1ID,
		Player2ID:  req.Player2ID,
		MatchOrder: req.MatchOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	id, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.UpdateMatch(ctx, id, usecase.UpdateMatchInput{
		Player1ID:  req.Player1ID,
		Player2ID:  req.Player2ID,
		MatchOrder: req.MatchOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	id, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.DeleteMatch(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
