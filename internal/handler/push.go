package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jklemm/hearthside/internal/auth"
	"github.com/jklemm/hearthside/internal/model"
	"github.com/jklemm/hearthside/internal/push"
	"github.com/jklemm/hearthside/internal/store"
)

type PushHandler struct {
	pushStore *store.PushStore
	settings  *store.SettingsStore
	service   *push.Service
	logger    *slog.Logger
}

func NewPushHandler(ps *store.PushStore, ss *store.SettingsStore, svc *push.Service, logger *slog.Logger) *PushHandler {
	return &PushHandler{pushStore: ps, settings: ss, service: svc, logger: logger}
}

type subscribeRequest struct {
	Endpoint   string `json:"endpoint"`
	P256dh     string `json:"p256dh"`
	Auth       string `json:"auth"`
	DeviceName string `json:"device_name"`
}

// Subscribe handles POST /api/push/subscribe
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Endpoint == "" || req.P256dh == "" || req.Auth == "" {
		writeError(w, http.StatusBadRequest, "endpoint, p256dh, and auth are required")
		return
	}

	sub, err := h.pushStore.CreateSubscription(userID, req.Endpoint, req.P256dh, req.Auth, req.DeviceName)
	if err != nil {
		h.logger.Error("create push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save subscription")
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// Unsubscribe handles DELETE /api/push/subscriptions. The browser knows
// its own endpoint, so unsubscribe is by endpoint rather than by id.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "endpoint is required")
		return
	}

	sub, err := h.pushStore.GetByEndpoint(req.Endpoint)
	if err != nil {
		h.logger.Error("lookup push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete subscription")
		return
	}
	if sub == nil || sub.UserID != userID {
		writeError(w, http.StatusNotFound, "subscription not found")
		return
	}

	if err := h.pushStore.DeleteByEndpoint(req.Endpoint); err != nil {
		h.logger.Error("delete push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions handles GET /api/push/subscriptions
func (h *PushHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	subs, err := h.pushStore.ListByUser(userID)
	if err != nil {
		h.logger.Error("list push subscriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}
	if subs == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// GetVAPIDKey handles GET /api/push/vapid-key
func (h *PushHandler) GetVAPIDKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.service.VAPIDPublicKey()})
}

// GetSettings handles GET /api/settings/notifications
func (h *PushHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	ns, err := h.settings.GetNotificationSettings(userID)
	if err != nil {
		h.logger.Error("get notification settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

type settingsRequest struct {
	RemindersEnabled     bool     `json:"reminders_enabled"`
	ReminderTimes        []string `json:"reminder_times"`
	TravelEnabled        bool     `json:"travel_enabled"`
	TravelLeadDays       int      `json:"travel_lead_days"`
	EncouragementEnabled bool     `json:"encouragement_enabled"`
}

// UpdateSettings handles PUT /api/settings/notifications
func (h *PushHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.TravelLeadDays < 0 {
		writeError(w, http.StatusBadRequest, "travel_lead_days must be >= 0")
		return
	}
	for _, raw := range req.ReminderTimes {
		if _, err := push.ParseTimeOfDay(raw); err != nil {
			writeError(w, http.StatusBadRequest, "reminder times must be HH:MM")
			return
		}
	}

	ns := model.NotificationSettings{
		UserID:               userID,
		RemindersEnabled:     req.RemindersEnabled,
		ReminderTimes:        req.ReminderTimes,
		TravelEnabled:        req.TravelEnabled,
		TravelLeadDays:       req.TravelLeadDays,
		EncouragementEnabled: req.EncouragementEnabled,
	}
	if err := h.settings.UpdateNotificationSettings(ns); err != nil {
		h.logger.Error("update notification settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	updated, err := h.settings.GetNotificationSettings(userID)
	if err != nil {
		h.logger.Error("reload notification settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
