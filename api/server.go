package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"logishare/notify"
	"logishare/storage"
)

// Server holds the handlers' dependencies. The store is injected so tests can
// run against a fresh in-memory store.
type Server struct {
	store    storage.Storage
	notifier *notify.Notifier
}

func NewServer(store storage.Storage, notifier *notify.Notifier) *Server {
	return &Server{store: store, notifier: notifier}
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", s.createDriver)
			r.Get("/by-email", s.getDriverByEmail)
			r.Get("/{id}", s.getDriver)
			r.Patch("/{id}", s.updateDriver)
			r.Get("/{id}/profile", s.getDriverProfile)
			r.Get("/{id}/vehicle", s.getDriverVehicle)
			r.Get("/{id}/license", s.getDriverLicense)
			r.Get("/{id}/orders", s.getDriverOrders)
			r.Get("/{id}/earnings", s.getDriverEarnings)
			r.Get("/{id}/earnings/daily/{date}", s.getDailyEarnings)
			r.Get("/{id}/earnings/weekly", s.getWeeklyEarnings)
			r.Get("/{id}/earnings/export", s.exportEarnings)
		})

		r.Post("/vehicles", s.createVehicle)
		r.Patch("/vehicles/{id}", s.updateVehicle)

		r.Post("/licenses", s.createLicense)
		r.Patch("/licenses/{id}", s.updateLicense)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/pending", s.getPendingOrders)
			r.Post("/", s.createOrder)
			r.Get("/{id}", s.getOrder)
			r.Patch("/{id}", s.updateOrder)
			r.Post("/{id}/accept", s.acceptOrder)
			r.Get("/{id}/qr", s.orderQR)
		})

		r.Post("/earnings", s.createEarning)
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// writeStoreError translates storage errors into HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrOrderTaken), errors.Is(err, storage.ErrDuplicate):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrInvalidStatus):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("api: storage error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
