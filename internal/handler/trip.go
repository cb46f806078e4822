package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jklemm/hearthside/internal/auth"
	"github.com/jklemm/hearthside/internal/livesync"
	"github.com/jklemm/hearthside/internal/store"
)

type TripHandler struct {
	trips  *store.TripStore
	hub    *livesync.Hub
	logger *slog.Logger
}

func NewTripHandler(ts *store.TripStore, hub *livesync.Hub, logger *slog.Logger) *TripHandler {
	return &TripHandler{trips: ts, hub: hub, logger: logger}
}

type tripRequest struct {
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// List handles GET /api/trips
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	trips, err := h.trips.ListByUser(userID)
	if err != nil {
		h.logger.Error("list trips", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list trips")
		return
	}
	if trips == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// Create handles POST /api/trips
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.StartDate.IsZero() {
		writeError(w, http.StatusBadRequest, "name and start_date are required")
		return
	}

	trip, err := h.trips.Create(userID, req.Name, req.Destination, req.StartDate, req.EndDate)
	if err != nil {
		h.logger.Error("create trip", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create trip")
		return
	}

	h.hub.Publish("trip", "created", trip.ID)
	writeJSON(w, http.StatusCreated, trip)
}

// Delete handles DELETE /api/trips/{id}
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.trips.Delete(id, userID); err != nil {
		h.logger.Error("delete trip", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete trip")
		return
	}

	h.hub.Publish("trip", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// ownedTrip loads a trip and checks it belongs to the requesting user.
func (h *TripHandler) ownedTrip(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID := auth.UserID(r.Context())

	tripID, err := parseIDParam(r, "trip_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trip id")
		return 0, false
	}
	trip, err := h.trips.Get(tripID, userID)
	if err != nil {
		h.logger.Error("get trip", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load trip")
		return 0, false
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "trip not found")
		return 0, false
	}
	return tripID, true
}

// ListItems handles GET /api/trips/{trip_id}/items
func (h *TripHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.ownedTrip(w, r)
	if !ok {
		return
	}

	items, err := h.trips.ListPackingItems(tripID)
	if err != nil {
		h.logger.Error("list packing items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list packing items")
		return
	}
	if items == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AddItem handles POST /api/trips/{trip_id}/items
func (h *TripHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.ownedTrip(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := h.trips.AddPackingItem(tripID, req.Name)
	if err != nil {
		h.logger.Error("add packing item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add packing item")
		return
	}

	h.hub.Publish("trip", "updated", tripID)
	writeJSON(w, http.StatusCreated, item)
}

// ToggleItem handles POST /api/trips/{trip_id}/items/{id}/toggle
func (h *TripHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.ownedTrip(w, r)
	if !ok {
		return
	}

	itemID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.trips.TogglePacked(itemID, tripID); err != nil {
		h.logger.Error("toggle packing item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle packing item")
		return
	}

	h.hub.Publish("trip", "updated", tripID)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem handles DELETE /api/trips/{trip_id}/items/{id}
func (h *TripHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.ownedTrip(w, r)
	if !ok {
		return
	}

	itemID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.trips.DeletePackingItem(itemID, tripID); err != nil {
		h.logger.Error("delete packing item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete packing item")
		return
	}

	h.hub.Publish("trip", "updated", tripID)
	w.WriteHeader(http.StatusNoContent)
}
