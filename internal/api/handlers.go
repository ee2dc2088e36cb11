package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/restaurant-orders/internal/api/middleware"
	"github.com/example/restaurant-orders/internal/order"
)

// OrderHandlers maps order endpoints onto the order service.
type OrderHandlers struct {
	orders *order.Service
}

func NewOrderHandlers(orders *order.Service) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

type createOrderRequest struct {
	Items       []order.Item  `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	Address     order.Address `json:"address"`
}

// Create places a new order for the authenticated customer.
func (h *OrderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customerID := middleware.GetUserID(r.Context())
	o, err := h.orders.Create(r.Context(), customerID, req.Items, req.TotalAmount, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyOrder):
			respondMessage(w, http.StatusBadRequest, "No items in order")
		case errors.Is(err, order.ErrInvalidQuantity), errors.Is(err, order.ErrInvalidAmount):
			respondMessage(w, http.StatusBadRequest, err.Error())
		default:
			respondMessage(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Order placed successfully",
		"order":   o,
	})
}

// MyOrders lists the authenticated customer's orders, items populated.
func (h *OrderHandlers) MyOrders(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.GetUserID(r.Context())
	views, err := h.orders.ListForCustomer(r.Context(), customerID)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// All lists every order for the admin dashboard, customers and items
// populated.
func (h *OrderHandlers) All(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// UpdateStatus sets the fulfillment status of an order.
func (h *OrderHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/orders/"), "/status")

	var req struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.orders.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			respondMessage(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrInvalidStatus):
			respondMessage(w, http.StatusBadRequest, err.Error())
		default:
			respondMessage(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated",
		"order":   o,
	})
}

// Update applies a partial admin update. Fields outside the allowed set
// are dropped without error.
func (h *OrderHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")

	var updates map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, _, err := h.orders.UpdateFields(r.Context(), id, updates)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			respondMessage(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrEmptyOrder),
			errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrInvalidAmount),
			errors.Is(err, order.ErrInvalidStatus),
			errors.Is(err, order.ErrInvalidPayStatus):
			respondMessage(w, http.StatusBadRequest, err.Error())
		default:
			respondMessage(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Order updated",
		"order":   o,
	})
}

// Delete hard-deletes an order. Deletion is final, no tombstone.
func (h *OrderHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")

	if err := h.orders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(w, http.StatusOK, "Order deleted successfully")
}
