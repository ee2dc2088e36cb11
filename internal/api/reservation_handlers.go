package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/restaurant-orders/internal/reservation"
)

// ReservationHandlers handles table booking requests.
type ReservationHandlers struct {
	reservations *reservation.Store
}

func NewReservationHandlers(reservations *reservation.Store) *ReservationHandlers {
	return &ReservationHandlers{reservations: reservations}
}

func (h *ReservationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var res reservation.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.reservations.Insert(r.Context(), &res); err != nil {
		if errors.Is(err, reservation.ErrIncomplete) {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":     "Reservation Saved Successfully",
		"reservation": res,
	})
}

func (h *ReservationHandlers) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.List(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}
