package httpapi

import (
	"net/http"
	"time"

	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

type createRoundRequest struct {
	Round    int       `json:"round" validate:"required,min=1"`
	Deadline time.Time `json:"deadline" validate:"required"`
	TeamSize int       `json:"teamSize" validate:"required,min=1"`
	Budget   *int64    `json:"budget" validate:"omitempty,min=1000000"`
}

type updateRoundRequest struct {
	Deadline        *time.Time `json:"deadline"`
	TeamSize        *int       `json:"teamSize" validate:"omitempty,min=1"`
	Budget          *int64     `json:"budget" validate:"omitempty,min=1000000"`
	ClearBudget     bool       `json:"clearBudget"`
	FreeTransfers   *int       `json:"freeTransfers" validate:"omitempty,min=0"`
	TransferPenalty *int       `json:"transferPenalty" validate:"omitempty,min=0"`
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	rounds, err := h.roundService.ListRounds(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rounds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	now := time.Now().UTC()
	items := make([]roundDTO, 0, len(rounds))
	for _, rnd := range rounds {
		items = append(items, roundToDTO(rnd, now))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentRound")
	defer span.End()

	current, err := h.roundService.CurrentRound(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(current, time.Now().UTC()))
}

func (h *Handler) CreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRound")
	defer span.End()

	var req createRoundRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.roundService.CreateRound(ctx, usecase.CreateRoundInput{
		Number:   req.Round,
		Deadline: req.Deadline,
		TeamSize: req.TeamSize,
		Budget:   req.Budget,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create round failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(created, time.Now().UTC()))
}

func (h *Handler) UpdateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRound")
	defer span.End()

	number, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateRoundRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.roundService.UpdateRound(ctx, number, usecase.UpdateRoundInput{
		Deadline:        req.Deadline,
		TeamSize:        req.TeamSize,
		Budget:          req.Budget,
		ClearBudget:     req.ClearBudget,
		FreeTransfers:   req.FreeTransfers,
		TransferPenalty: req.TransferPenalty,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update round failed", "round", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(updated, time.Now().UTC()))
}

func (h *Handler) DeleteRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRound")
	defer span.End()

	number, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.roundService.DeleteRound(ctx, number); err != nil {
		h.logger.WarnContext(ctx, "delete round failed", "round", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) CloseRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseRound")
	defer span.End()

	number, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	closed, err := h.roundService.CloseRound(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "close round failed", "round", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(closed, time.Now().UTC()))
}
