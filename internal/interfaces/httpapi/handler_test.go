package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/omarwf/fantasy-rounds/internal/infrastructure/repository/memory"
	"github.com/omarwf/fantasy-rounds/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Now().UTC()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	roundRepo := memory.NewRoundRepository(memory.SeedRounds(now))
	matchRepo := memory.NewMatchRepository(memory.SeedMatches(now))
	rosterRepo := memory.NewRosterRepository(nil)
	scoringRepo := memory.NewScoringRepository()
	userRepo := memory.NewUserRepository(nil)

	authService := usecase.NewAuthService(userRepo, logger)
	playerService := usecase.NewPlayerService(playerRepo, rosterRepo, logger)
	scoringService := usecase.NewScoringService(scoringRepo, rosterRepo, roundRepo, playerRepo, userRepo, logger)
	roundService := usecase.NewRoundService(roundRepo, rosterRepo, matchRepo, scoringRepo, scoringService, logger)
	rosterService := usecase.NewRosterService(rosterRepo, roundRepo, playerRepo, matchRepo, logger)
	matchService := usecase.NewMatchService(matchRepo, roundRepo, playerRepo, logger)
	leaderboardService := usecase.NewLeaderboardService(userRepo, rosterRepo, roundRepo, playerRepo, scoringRepo, logger)

	handler := NewHandler(
		authService,
		playerService,
		roundService,
		rosterService,
		matchService,
		scoringService,
		leaderboardService,
		logger,
	)

	return NewRouter(handler, authService, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func registerUser(t *testing.T, router http.Handler, username, name, email string) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		`{"username":"`+username+`","name":"`+name+`","email":"`+email+`","password":"correct horse"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestRouter_RegisterFirstUserIsAdmin(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "alice", "Alice", "alice@example.com")
	registerUser(t, router, "bob", "Bob", "bob@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/verify", "", `{"userId":"alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeData(t, rec)["isAdmin"])

	rec = doJSON(t, router, http.MethodPost, "/api/auth/verify", "", `{"userId":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decodeData(t, rec)["isAdmin"])
}

func TestRouter_TeamLifecycle(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice", "Alice", "alice@example.com")
	registerUser(t, router, "bob", "Bob", "bob@example.com")

	// Bob cannot submit Alice's team.
	rec := doJSON(t, router, http.MethodPost, "/api/team", "bob",
		`{"userId":"alice","round":1,"selectedPlayers":[7,8,9,11,12],"captainId":7}`)
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/team", "bob",
		`{"userId":"bob","round":1,"selectedPlayers":[7,8,9,11,12],"captainId":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/team/1", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	team := decodeData(t, rec)["userId"]
	require.Equal(t, "bob", team)

	// Round 1 locks after the first save.
	rec = doJSON(t, router, http.MethodPost, "/api/team", "bob",
		`{"userId":"bob","round":1,"selectedPlayers":[7,8,9,11,12],"captainId":8}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestRouter_TransferFlow(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice", "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/team", "alice",
		`{"userId":"alice","round":2,"selectedPlayers":[7,8,9,11,12],"captainId":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/transfer", "alice",
		`{"userId":"alice","round":2,"playerId":12,"action":"remove"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	require.Equal(t, false, data["penaltyWillApply"])
	require.EqualValues(t, 1, data["transfersUsed"])

	rec = doJSON(t, router, http.MethodPost, "/api/transfer", "alice",
		`{"userId":"alice","round":2,"playerId":6,"action":"add"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data = decodeData(t, rec)
	require.Equal(t, true, data["penaltyWillApply"])
	require.EqualValues(t, 30, data["penaltyAmount"])
	require.EqualValues(t, 2, data["transfersUsed"])
}

func TestRouter_AdminGating(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice", "Alice", "alice@example.com")
	registerUser(t, router, "bob", "Bob", "bob@example.com")

	body := `{"name":"New Signing","price":5000000,"qualified":true}`

	rec := doJSON(t, router, http.MethodPost, "/api/admin/players", "bob", body)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/admin/players", "alice", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "New Signing", decodeData(t, rec)["name"])
}

func TestRouter_ScoreAndLeaderboard(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "alice", "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/team", "alice",
		`{"userId":"alice","round":1,"selectedPlayers":[7,8,9,11,12],"captainId":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/admin/update-scores", "alice",
		`{"round":1,"scores":[{"playerId":7,"points":5},{"playerId":8,"points":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/leaderboard", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []struct {
			UserID string `json:"userId"`
			Points int    `json:"points"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "alice", envelope.Data[0].UserID)
	// Captain doubled: 5*2 + 5 = 15.
	require.Equal(t, 15, envelope.Data[0].Points)
}

func TestRouter_HealthzBypassesAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
