// internal/api/courts.go
package api

import (
	"net/http"
	"strconv"

	"github.com/acereserve/acereserve/internal/models"
)

// GET /api/v1/courts
func (a *API) handleCourtList(w http.ResponseWriter, r *http.Request) {
	courts, err := a.loadStore().ListCourts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if courts == nil {
		courts = []models.Court{}
	}
	writeJSON(w, http.StatusOK, courts)
}

// GET /api/v1/courts/{number}
func (a *API) handleCourtShow(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(r.PathValue("number"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid court number", http.StatusBadRequest)
		return
	}

	court, err := a.loadStore().GetCourtByNumber(r.Context(), number)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, court)
}
