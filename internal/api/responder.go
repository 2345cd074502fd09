// internal/api/responder.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acereserve/acereserve/internal/models"
)

type errorResponse struct {
	Kind    models.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain error kinds onto HTTP statuses; everything the core
// does not classify is an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *models.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForKind(domainErr.Kind), errorResponse{
			Kind:    domainErr.Kind,
			Message: domainErr.Message,
		})
		return
	}

	log.Ctx(r.Context()).Error().Err(err).Msg("Unhandled error")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindCourtNotFound,
		models.KindServiceNotFound,
		models.KindReservationNotFound,
		models.KindLoyaltyAccountNotFound:
		return http.StatusNotFound
	case models.KindDoubleCourtBooking,
		models.KindDoubleCoachBooking:
		return http.StatusConflict
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindStartTimeInvalid,
		models.KindClubNotOpen,
		models.KindClubClosed,
		models.KindLightingUnavailable,
		models.KindLightingTimeRestricted,
		models.KindInvalidReservationInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
