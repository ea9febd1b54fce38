package api

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/forms"
	"talent-search/internal/storage"
)

// CreateInterestHandler records a contact request. Status starts as "new".
// @Summary Submit interest
// @Tags interests
// @Accept json
// @Produce json
// @Param interest body forms.InterestForm true "Interest"
// @Success 201 {object} storage.Interest
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/interests [post]
func (a *API) CreateInterestHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	in, err := forms.DecodeInterest(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	interest, err := a.store.CreateInterest(r.Context(), in)
	if err != nil {
		a.fail(w, r, "Failed to submit interest", err)
		return
	}
	writeJSON(w, http.StatusCreated, interest)
}

// ListInterestsHandler
// @Summary List interests
// @Tags interests
// @Produce json
// @Success 200 {array} storage.InterestListing
// @Failure 500 {object} ErrorResponse
// @Router /api/interests [get]
func (a *API) ListInterestsHandler(w http.ResponseWriter, r *http.Request) {
	interests, err := a.store.ListInterests(r.Context())
	if err != nil {
		a.fail(w, r, "Failed to fetch interests", err)
		return
	}
	writeJSON(w, http.StatusOK, interests)
}

// GetInterestHandler
// @Summary Get interest
// @Tags interests
// @Produce json
// @Param id path int true "Interest ID"
// @Success 200 {object} storage.InterestListing
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/interests/{id} [get]
func (a *API) GetInterestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid interest ID")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	interest, err := a.store.GetInterest(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, r, apperr.NotFound("Interest not found", nil))
		return
	}
	if err != nil {
		a.fail(w, r, "Failed to fetch interest", err)
		return
	}
	writeJSON(w, http.StatusOK, interest)
}

// CandidateInterestsHandler
// @Summary List interests for a candidate
// @Tags interests
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {array} storage.Interest
// @Failure 400 {object} ErrorResponse
// @Router /api/candidates/{id}/interests [get]
func (a *API) CandidateInterestsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid candidate ID")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	interests, err := a.store.ListInterestsByCandidate(r.Context(), id)
	if err != nil {
		a.fail(w, r, "Failed to fetch interests", err)
		return
	}
	writeJSON(w, http.StatusOK, interests)
}

// UpdateInterestStatusHandler
// @Summary Update interest status
// @Tags interests
// @Accept json
// @Produce json
// @Param id path int true "Interest ID"
// @Param status body forms.StatusForm true "New status"
// @Success 200 {object} storage.Interest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/interests/{id}/status [put]
func (a *API) UpdateInterestStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid interest ID")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	status, err := forms.DecodeStatus(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !storage.KnownInterestStatus(status) {
		a.logger.Warn("Unknown interest status", zap.Int64("interest_id", id), zap.String("status", status))
	}

	interest, err := a.store.UpdateInterestStatus(r.Context(), id, status)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, r, apperr.NotFound("Interest not found", nil))
		return
	}
	if err != nil {
		a.fail(w, r, "Failed to update interest status", err)
		return
	}
	writeJSON(w, http.StatusOK, interest)
}
