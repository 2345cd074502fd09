// internal/api/handlers.go

// Package api exposes the reservation core over HTTP. Authentication is
// owned by an upstream proxy; this layer only resolves the pre-authenticated
// identity, decodes requests, and maps domain error kinds to statuses.
package api

import (
	"net/http"

	appdb "github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/reservations"
	"github.com/acereserve/acereserve/internal/store"
)

type API struct {
	database *appdb.DB
	service  *reservations.Service
}

func New(database *appdb.DB, service *reservations.Service) *API {
	return &API{database: database, service: service}
}

// Handler builds the full route table wrapped in the middleware chain.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	authed := http.NewServeMux()
	authed.HandleFunc("POST /api/v1/reservations", a.handleReservationCreate)
	authed.HandleFunc("GET /api/v1/reservations", a.handleReservationList)
	authed.HandleFunc("PATCH /api/v1/reservations/{id}", a.handleReservationModify)
	authed.HandleFunc("DELETE /api/v1/reservations/{id}", a.handleReservationCancel)
	authed.HandleFunc("GET /api/v1/loyalty", a.handleLoyaltyShow)
	authed.HandleFunc("GET /api/v1/loyalty/{user_id}", a.handleLoyaltyShowForUser)
	authed.HandleFunc("POST /api/v1/loyalty/adjust", a.handleLoyaltyAdjust)
	authed.HandleFunc("GET /api/v1/courts", a.handleCourtList)
	authed.HandleFunc("GET /api/v1/courts/{number}", a.handleCourtShow)

	mux.Handle("/api/v1/", WithIdentity(a.loadStore)(authed))

	return ChainMiddleware(
		mux,
		WithLogging,
		WithRecovery,
		WithRequestID,
	)
}

func (a *API) loadStore() *store.Store {
	return store.New(a.database)
}
