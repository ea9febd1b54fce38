package api

import (
	"context"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	mux.HandleFunc("GET /health", a.HealthHandler)

	admin := func(h http.HandlerFunc) http.Handler {
		return a.auth.RequireAdmin(a.requireAdmin, a.writeError)(h)
	}

	// Candidates
	mux.HandleFunc("GET /api/candidates", a.ListCandidatesHandler)
	mux.HandleFunc("GET /api/candidates/search", a.SearchHandler)
	mux.HandleFunc("GET /api/candidates/search/explain", a.ExplainHandler)
	mux.HandleFunc("GET /api/candidates/filter", a.FilterHandler)
	mux.HandleFunc("GET /api/candidates/{id}", a.GetCandidateHandler)
	mux.Handle("POST /api/candidates", admin(a.CreateCandidateHandler))
	mux.Handle("PUT /api/candidates/{id}", admin(a.UpdateCandidateHandler))
	mux.Handle("DELETE /api/candidates/{id}", admin(a.DeleteCandidateHandler))
	mux.Handle("POST /api/candidates/parse-resume", admin(a.ParseResumeHandler))

	// Interests
	mux.HandleFunc("POST /api/interests", a.CreateInterestHandler)
	mux.Handle("GET /api/interests", admin(a.ListInterestsHandler))
	mux.Handle("GET /api/interests/{id}", admin(a.GetInterestHandler))
	mux.Handle("GET /api/candidates/{id}/interests", admin(a.CandidateInterestsHandler))
	mux.Handle("PUT /api/interests/{id}/status", admin(a.UpdateInterestStatusHandler))

	// Analytics
	mux.HandleFunc("POST /api/analytics/candidate-view", a.TrackViewHandler)
	mux.HandleFunc("POST /api/analytics/search", a.TrackSearchHandler)
	mux.Handle("GET /api/analytics/dashboard", admin(a.DashboardHandler))

	mux.HandleFunc("POST /api/auth/sync", a.SyncUserHandler)

	return a.recoverPanics(a.logRequests(mux))
}

// HealthHandler reports whether the database answers.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
