package httpapi

import (
	"net/http"

	"github.com/omarwf/fantasy-rounds/internal/domain/scoring"
	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

type scoreEntryRequest struct {
	PlayerID int64 `json:"playerId" validate:"required"`
	Points   int   `json:"points"`
}

type updateScoresRequest struct {
	Round  int                 `json:"round" validate:"required,min=1"`
	Scores []scoreEntryRequest `json:"scores" validate:"required,min=1,dive"`
}

type updateConfigRequest struct {
	CorrectAnswer         int `json:"correctAnswer"`
	WrongAnswer           int `json:"wrongAnswer"`
	TransferPenalty       int `json:"transferPenalty" validate:"min=0"`
	FreeTransfersPerRound int `json:"freeTransfersPerRound" validate:"min=0"`
}

func (h *Handler) UpdateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScores")
	defer span.End()

	var req updateScoresRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.ScoreEntry, 0, len(req.Scores))
	for _, entry := range req.Scores {
		entries = append(entries, usecase.ScoreEntry{
			PlayerID: entry.PlayerID,
			Points:   entry.Points,
		})
	}

	if err := h.scoringService.UpdateScores(ctx, req.Round, entries); err != nil {
		h.logger.WarnContext(ctx, "update scores failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"round":   req.Round,
		"updated": len(entries),
	})
}

func (h *Handler) CalculatePoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculatePoints")
	defer span.End()

	roundNumber, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.CalculateRoundPoints(ctx, roundNumber); err != nil {
		h.logger.ErrorContext(ctx, "calculate points failed", "round", roundNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"round":      roundNumber,
		"calculated": true,
	})
}

func (h *Handler) GetPointsConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPointsConfig")
	defer span.End()

	cfg, err := h.scoringService.GetConfig(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cfg)
}

func (h *Handler) UpdatePointsConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePointsConfig")
	defer span.End()

	var req updateConfigRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.scoringService.UpdateConfig(ctx, scoring.Config{
		CorrectAnswer:         req.CorrectAnswer,
		WrongAnswer:           req.WrongAnswer,
		TransferPenalty:       req.TransferPenalty,
		FreeTransfersPerRound: req.FreeTransfersPerRound,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update points config failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saved)
}
