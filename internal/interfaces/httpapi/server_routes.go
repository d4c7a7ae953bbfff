package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/auth/register", handler.Register)
	mux.HandleFunc("POST /api/auth/login", handler.Login)
	mux.HandleFunc("POST /api/auth/verify", handler.VerifyUser)

	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/{round}", handler.ListQualifiedPlayers)
	mux.HandleFunc("GET /api/rounds", handler.ListRounds)
	mux.HandleFunc("GET /api/rounds/current", handler.GetCurrentRound)
	mux.HandleFunc("GET /api/matches/{round}", handler.ListMatches)
	mux.HandleFunc("GET /api/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /api/leaderboard/detailed", handler.GetDetailedLeaderboard)
	mux.HandleFunc("GET /api/config/points", handler.GetPointsConfig)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler, resolver IdentityResolver) {
	mux.Handle("POST /api/team", RequireUser(resolver, http.HandlerFunc(handler.SaveTeam)))
	mux.Handle("GET /api/team/{round}", RequireUser(resolver, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("POST /api/transfer", RequireUser(resolver, http.HandlerFunc(handler.ApplyTransfer)))
	mux.Handle("GET /api/transfers/{round}", RequireUser(resolver, http.HandlerFunc(handler.ListTransfers)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, resolver IdentityResolver) {
	mux.Handle("POST /api/admin/players", RequireAdmin(resolver, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /api/admin/players/{playerID}", RequireAdmin(resolver, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /api/admin/players/{playerID}", RequireAdmin(resolver, http.HandlerFunc(handler.DeletePlayer)))

	mux.Handle("POST /api/admin/rounds", RequireAdmin(resolver, http.HandlerFunc(handler.CreateRound)))
	mux.Handle("PUT /api/admin/rounds/{round}", RequireAdmin(resolver, http.HandlerFunc(handler.UpdateRound)))
	mux.Handle("DELETE /api/admin/rounds/{round}", RequireAdmin(resolver, http.HandlerFunc(handler.DeleteRound)))
	mux.Handle("POST /api/admin/rounds/{round}/close", RequireAdmin(resolver, http.HandlerFunc(handler.CloseRound)))

	mux.Handle("POST /api/admin/matches", RequireAdmin(resolver, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("PUT /api/admin/matches/{matchID}", RequireAdmin(resolver, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /api/admin/matches/{matchID}", RequireAdmin(resolver, http.HandlerFunc(handler.DeleteMatch)))

	mux.Handle("POST /api/admin/update-scores", RequireAdmin(resolver, http.HandlerFunc(handler.UpdateScores)))
	mux.Handle("POST /api/admin/calculate-points/{round}", RequireAdmin(resolver, http.HandlerFunc(handler.CalculatePoints)))
	mux.Handle("PUT /api/admin/config/points", RequireAdmin(resolver, http.HandlerFunc(handler.UpdatePointsConfig)))
}
