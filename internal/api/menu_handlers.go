package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/restaurant-orders/internal/menu"
)

// MenuHandlers handles menu CRUD. Reads are public; writes are admin-only
// (enforced by the router).
type MenuHandlers struct {
	catalog menu.Catalog
}

func NewMenuHandlers(catalog menu.Catalog) *MenuHandlers {
	return &MenuHandlers{catalog: catalog}
}

func (h *MenuHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *MenuHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/menu/")
	item, ok, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		respondMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *MenuHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var item menu.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.Available = true

	if _, err := h.catalog.Insert(r.Context(), &item); err != nil {
		if errors.Is(err, menu.ErrInvalidItem) {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Menu item added",
		"menu":    item,
	})
}

// Update applies a partial update: the request body is decoded over the
// stored item, so absent fields keep their values.
func (h *MenuHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/menu/")

	item, ok, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		respondMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(item); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = id

	if err := h.catalog.Update(r.Context(), item); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *MenuHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/menu/")
	if _, err := h.catalog.Delete(r.Context(), id); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondMessage(w, http.StatusOK, "Menu item deleted")
}
