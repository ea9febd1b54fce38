package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"talent-search/internal/apperr"
	"talent-search/internal/forms"
	"talent-search/internal/search"
	"talent-search/internal/storage"
)

// ListCandidatesHandler returns every candidate, active or not.
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Success 200 {array} storage.Candidate
// @Failure 500 {object} ErrorResponse
// @Router /api/candidates [get]
func (a *API) ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	candidates, err := a.store.ListCandidates(r.Context(), false)
	if err != nil {
		a.fail(w, r, "Failed to fetch candidates", err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// GetCandidateHandler
// @Summary Get candidate
// @Tags candidates
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} storage.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/candidates/{id} [get]
func (a *API) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid candidate ID")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	c, err := a.store.GetCandidate(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, r, apperr.NotFound("Candidate not found", nil))
		return
	}
	if err != nil {
		a.fail(w, r, "Failed to fetch candidate", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCandidateHandler
// @Summary Create candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param candidate body forms.CandidatePayload true "Candidate"
// @Success 201 {object} storage.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/candidates [post]
func (a *API) CreateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	payload, err := forms.DecodeCandidate(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	in, err := payload.ToNewCandidate()
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	c, err := a.store.CreateCandidate(r.Context(), in)
	if err != nil {
		a.fail(w, r, "Failed to create candidate", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCandidateHandler applies a partial update. Absent fields are kept.
// @Summary Update candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path int true "Candidate ID"
// @Param candidate body forms.CandidatePayload true "Fields to change"
// @Success 200 {object} storage.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/candidates/{id} [put]
func (a *API) UpdateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid candidate ID")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	payload, err := forms.DecodeCandidate(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	patch, err := payload.ToPatch()
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	c, err := a.store.UpdateCandidate(r.Context(), id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, r, apperr.NotFound("Candidate not found", nil))
		return
	}
	if err != nil {
		a.fail(w, r, "Failed to update candidate", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCandidateHandler
// @Summary Delete candidate
// @Tags candidates
// @Param id path int true "Candidate ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/candidates/{id} [delete]
func (a *API) DeleteCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid candidate ID")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	deleted, err := a.store.DeleteCandidate(r.Context(), id)
	if err != nil {
		a.fail(w, r, "Failed to delete candidate", err)
		return
	}
	if !deleted {
		a.writeError(w, r, apperr.NotFound("Candidate not found", nil))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchHandler interprets a free-text query.
// @Summary Search candidates
// @Description Extracts skills, minimum experience and availability from q and filters active candidates. Without any of those it falls back to a text match.
// @Tags search
// @Produce json
// @Param q query string false "Query, e.g. senior react developer with 5 years"
// @Success 200 {array} storage.Candidate
// @Failure 500 {object} ErrorResponse
// @Router /api/candidates/search [get]
func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	candidates, err := a.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.fail(w, r, "Failed to search candidates", err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

type ExplainResponse struct {
	search.Criteria
	Mode string `json:"mode"`
}

// ExplainHandler shows how a query would be interpreted.
// @Summary Explain search query
// @Tags search
// @Produce json
// @Param q query string false "Query"
// @Success 200 {object} ExplainResponse
// @Router /api/candidates/search/explain [get]
func (a *API) ExplainHandler(w http.ResponseWriter, r *http.Request) {
	c := a.search.Explain(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, ExplainResponse{Criteria: c, Mode: c.Mode()})
}

// FilterHandler
// @Summary Filter candidates
// @Tags search
// @Produce json
// @Param skills query string false "Comma-separated skills"
// @Param experience query int false "Minimum years of experience"
// @Param availability query string false "Availability label"
// @Success 200 {array} storage.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/candidates/filter [get]
func (a *API) FilterHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fc := search.FilterCriteria{
		Skills:       forms.SplitList(q.Get("skills")),
		Availability: strings.TrimSpace(q.Get("availability")),
	}
	if raw := strings.TrimSpace(q.Get("experience")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.writeError(w, r, apperr.InvalidInput("Invalid experience value", nil))
			return
		}
		fc.MinExperience = &n
	}

	candidates, err := a.search.Filter(r.Context(), fc)
	if err != nil {
		a.fail(w, r, "Failed to filter candidates", err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
