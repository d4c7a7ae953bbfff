package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/omarwf/fantasy-rounds/internal/domain/match"
	"github.com/omarwf/fantasy-rounds/internal/domain/player"
	"github.com/omarwf/fantasy-rounds/internal/domain/roster"
	"github.com/omarwf/fantasy-rounds/internal/domain/round"
	"github.com/omarwf/fantasy-rounds/internal/domain/user"
	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

type Handler struct {
	authService        *usecase.AuthService
	playerService      *usecase.PlayerService
	roundService       *usecase.RoundService
	rosterService      *usecase.RosterService
	matchService       *usecase.MatchService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	playerService *usecase.PlayerService,
	roundService *usecase.RoundService,
	rosterService *usecase.RosterService,
	matchService *usecase.MatchService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		authService:        authService,
		playerService:      playerService,
		roundService:       roundService,
		rosterService:      rosterService,
		matchService:       matchService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// requirePrincipal rejects requests where the caller acts on someone else's
// data without admin rights.
func requirePrincipal(ctx context.Context, targetUserID string) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	if targetUserID != "" && targetUserID != principal.UserID && !principal.IsAdmin {
		return user.Principal{}, fmt.Errorf("%w: cannot act on behalf of another user", usecase.ErrForbidden)
	}
	return principal, nil
}

type playerDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qualified bool   `json:"qualified"`
	Points    int    `json:"points"`
}

type roundDTO struct {
	Round           int    `json:"round"`
	Deadline        string `json:"deadline"`
	TeamSize        int    `json:"teamSize"`
	Budget          *int64 `json:"budget"`
	IsClosed        bool   `json:"isClosed"`
	FreeTransfers   int    `json:"freeTransfers"`
	TransferPenalty int    `json:"transferPenalty"`
	State           string `json:"state"`
}

type teamDTO struct {
	UserID          string  `json:"userId"`
	Round           int     `json:"round"`
	SelectedPlayers []int64 `json:"selectedPlayers"`
	CaptainID       *int64  `json:"captainId"`
	TransfersUsed   int     `json:"transfersUsed"`
	TotalPoints     int     `json:"totalPoints"`
	CarriedOver     bool    `json:"carriedOver"`
	UpdatedAt       string  `json:"updatedAt"`
}

type matchDTO struct {
	ID         int64 `json:"id"`
	Round      int   `json:"round"`
	Player1ID  int64 `json:"player1Id"`
	Player2ID  int64 `json:"player2Id"`
	MatchOrder int   `json:"matchOrder"`
}

type userDTO struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
	TotalPoints int    `json:"totalPoints"`
}

type transferEventDTO struct {
	ID          int64  `json:"id"`
	Round       int    `json:"round"`
	PlayerOutID int64  `json:"playerOutId"`
	PlayerInID  int64  `json:"playerInId"`
	PointsDelta int    `json:"pointsDelta"`
	CreatedAt   string `json:"createdAt"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		Price:     v.Price,
		Qualified: v.Qualified,
		Points:    v.Points,
	}
}

func roundToDTO(v round.Round, now time.Time) roundDTO {
	return roundDTO{
		Round:           v.Number,
		Deadline:        v.Deadline.UTC().Format(time.RFC3339),
		TeamSize:        v.TeamSize,
		Budget:          v.Budget,
		IsClosed:        v.IsClosed,
		FreeTransfers:   v.FreeTransfers,
		TransferPenalty: v.TransferPenalty,
		State:           string(v.State(now)),
	}
}

func rosterToDTO(v roster.Roster) teamDTO {
	players := v.PlayerIDs
	if players == nil {
		players = []int64{}
	}
	return teamDTO{
		UserID:          v.UserID,
		Round:           v.Round,
		SelectedPlayers: players,
		CaptainID:       v.CaptainID,
		TransfersUsed:   v.TransfersUsed,
		TotalPoints:     v.TotalPoints,
		CarriedOver:     v.CarriedOver,
		UpdatedAt:       v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:         v.ID,
		Round:      v.Round,
		Player1ID:  v.Player1ID,
		Player2ID:  v.Player2ID,
		MatchOrder: v.MatchOrder,
	}
}

func userToDTO(v user.User) userDTO {
	return userDTO{
		UserID:      v.ID,
		Name:        v.Name,
		Email:       v.Email,
		IsAdmin:     v.IsAdmin,
		TotalPoints: v.TotalPoints,
	}
}

func transferEventToDTO(v roster.TransferEvent) transferEventDTO {
	return transferEventDTO{
		ID:          v.ID,
		Round:       v.Round,
		PlayerOutID: v.PlayerOutID,
		PlayerInID:  v.PlayerInID,
		PointsDelta: v.PointsDelta,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
