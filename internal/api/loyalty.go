// internal/api/loyalty.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/acereserve/acereserve/internal/authz"
)

type loyaltyAdjustRequest struct {
	UserID       int64  `json:"user_id"`
	PointsChange int64  `json:"points_change"`
	Reason       string `json:"reason,omitempty"`
}

// GET /api/v1/loyalty
func (a *API) handleLoyaltyShow(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if requester == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	account, err := a.service.GetLoyalty(r.Context(), requester.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// GET /api/v1/loyalty/{user_id} (admin)
func (a *API) handleLoyaltyShowForUser(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if err := authz.RequireAdmin(requester); err != nil {
		respondAuthzError(w, err)
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	account, err := a.service.GetLoyalty(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// POST /api/v1/loyalty/adjust (admin)
func (a *API) handleLoyaltyAdjust(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if err := authz.RequireAdmin(requester); err != nil {
		respondAuthzError(w, err)
		return
	}

	var req loyaltyAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := a.service.AdjustLoyalty(r.Context(), req.UserID, req.PointsChange)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func respondAuthzError(w http.ResponseWriter, err error) {
	if errors.Is(err, authz.ErrUnauthenticated) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Forbidden", http.StatusForbidden)
}
