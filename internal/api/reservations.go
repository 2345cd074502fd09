// internal/api/reservations.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/acereserve/acereserve/internal/authz"
	"github.com/acereserve/acereserve/internal/models"
)

// POST /api/v1/reservations
func (a *API) handleReservationCreate(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if requester == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := a.service.Create(r.Context(), *requester, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /api/v1/reservations
func (a *API) handleReservationList(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if requester == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reservations, err := a.service.ListForUser(r.Context(), requester.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

// PATCH /api/v1/reservations/{id}
func (a *API) handleReservationModify(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if requester == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reservationID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid reservation id", http.StatusBadRequest)
		return
	}

	var patch models.ReservationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	modified, err := a.service.Modify(r.Context(), *requester, reservationID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, modified)
}

// DELETE /api/v1/reservations/{id}
func (a *API) handleReservationCancel(w http.ResponseWriter, r *http.Request) {
	requester := authz.UserFromContext(r.Context())
	if requester == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reservationID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid reservation id", http.StatusBadRequest)
		return
	}

	if err := a.service.Cancel(r.Context(), *requester, reservationID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Reservation was cancelled successfully.",
	})
}
