package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jklemm/hearthside/internal/auth"
	"github.com/jklemm/hearthside/internal/livesync"
	"github.com/jklemm/hearthside/internal/model"
	"github.com/jklemm/hearthside/internal/store"
)

var validBadgeKinds = map[string]bool{
	model.BadgeKindStar:     true,
	model.BadgeKindHeart:    true,
	model.BadgeKindTrophy:   true,
	model.BadgeKindHighFive: true,
}

type BadgeHandler struct {
	badges *store.BadgeStore
	users  *store.UserStore
	hub    *livesync.Hub
	logger *slog.Logger
}

func NewBadgeHandler(bs *store.BadgeStore, us *store.UserStore, hub *livesync.Hub, logger *slog.Logger) *BadgeHandler {
	return &BadgeHandler{badges: bs, users: us, hub: hub, logger: logger}
}

// ListReceived handles GET /api/badges
func (h *BadgeHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	badges, err := h.badges.ListReceived(userID)
	if err != nil {
		h.logger.Error("list received badges", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list badges")
		return
	}
	if badges == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// ListGiven handles GET /api/badges/given
func (h *BadgeHandler) ListGiven(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	badges, err := h.badges.ListGiven(userID)
	if err != nil {
		h.logger.Error("list given badges", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list badges")
		return
	}
	if badges == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

type giveBadgeRequest struct {
	ToUserID int64  `json:"to_user_id"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// Give handles POST /api/badges
func (h *BadgeHandler) Give(w http.ResponseWriter, r *http.Request) {
	fromUserID := auth.UserID(r.Context())

	var req giveBadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !validBadgeKinds[req.Kind] {
		writeError(w, http.StatusBadRequest, "unknown badge kind")
		return
	}
	if req.ToUserID == fromUserID {
		writeError(w, http.StatusBadRequest, "cannot give a badge to yourself")
		return
	}

	recipient, err := h.users.GetByID(req.ToUserID)
	if err != nil {
		h.logger.Error("badge recipient lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to give badge")
		return
	}
	if recipient == nil {
		writeError(w, http.StatusNotFound, "recipient not found")
		return
	}

	badge, err := h.badges.Give(fromUserID, req.ToUserID, req.Kind, req.Message)
	if err != nil {
		h.logger.Error("give badge", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to give badge")
		return
	}

	h.hub.Publish("badge", "created", badge.ID)
	writeJSON(w, http.StatusCreated, badge)
}
