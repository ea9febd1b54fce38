package api

import (
	"net/http"

	"talent-search/internal/analytics"
	"talent-search/internal/forms"
)

// TrackViewHandler queues a candidate view and returns at once.
// @Summary Record candidate view
// @Tags analytics
// @Accept json
// @Produce json
// @Param view body forms.CandidateViewForm true "View"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Router /api/analytics/candidate-view [post]
func (a *API) TrackViewHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	f, err := forms.DecodeCandidateView(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.tracker.TrackView(r.Context(), f.CandidateID, requestMeta(r))
	writeJSON(w, http.StatusAccepted, map[string]bool{"success": true})
}

// TrackSearchHandler
// @Summary Record search
// @Tags analytics
// @Accept json
// @Produce json
// @Param search body forms.SearchActivityForm true "Search"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Router /api/analytics/search [post]
func (a *API) TrackSearchHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	f, err := forms.DecodeSearchActivity(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.tracker.TrackSearch(r.Context(), f.Query, f.SearchType, f.ResultsCount, requestMeta(r))
	writeJSON(w, http.StatusAccepted, map[string]bool{"success": true})
}

// DashboardHandler
// @Summary Analytics dashboard
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.Dashboard
// @Failure 500 {object} ErrorResponse
// @Router /api/analytics/dashboard [get]
func (a *API) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := analytics.BuildDashboard(r.Context(), a.store)
	if err != nil {
		a.fail(w, r, "Failed to fetch analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
