package api

import (
	"net/http"

	"talent-search/internal/forms"
)

// SyncUserHandler verifies an identity token and upserts its user.
// @Summary Sync signed-in user
// @Tags auth
// @Accept json
// @Produce json
// @Param token body forms.SyncForm true "Identity token"
// @Success 200 {object} storage.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/sync [post]
func (a *API) SyncUserHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	token, err := forms.DecodeSync(body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	user, err := a.auth.SyncUser(r.Context(), token)
	if err != nil {
		a.fail(w, r, "Failed to sync user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
