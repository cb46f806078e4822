package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jklemm/hearthside/internal/auth"
	"github.com/jklemm/hearthside/internal/livesync"
	"github.com/jklemm/hearthside/internal/model"
	"github.com/jklemm/hearthside/internal/push"
	"github.com/jklemm/hearthside/internal/store"
)

type TaskHandler struct {
	tasks    *store.TaskStore
	settings *store.SettingsStore
	tracker  *push.EncouragementTracker
	hub      *livesync.Hub
	logger   *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, ss *store.SettingsStore, tracker *push.EncouragementTracker, hub *livesync.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, settings: ss, tracker: tracker, hub: hub, logger: logger}
}

type taskRequest struct {
	Title   string     `json:"title"`
	Notes   string     `json:"notes"`
	DueDate *time.Time `json:"due_date"`
}

// List handles GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	tasks, err := h.tasks.ListByUser(userID)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.tasks.Create(userID, req.Title, req.Notes, req.DueDate)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.hub.Publish("task", "created", task.ID)
	writeJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.tasks.Update(id, userID, req.Title, req.Notes, req.DueDate)
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	h.hub.Publish("task", "updated", task.ID)
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.tasks.Delete(id, userID); err != nil {
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	h.hub.Publish("task", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

type completeResponse struct {
	Task          *model.Task   `json:"task"`
	Done          int           `json:"done"`
	Total         int           `json:"total"`
	Encouragement *push.Payload `json:"encouragement,omitempty"`
}

// Complete handles POST /api/tasks/{id}/complete. Alongside the updated
// task it returns the day's progress and, when a completion-ratio
// milestone was newly crossed, one encouragement message for the client
// to render.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	now := time.Now()
	task, err := h.tasks.Complete(id, userID, now)
	if err != nil {
		h.logger.Error("complete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	resp := completeResponse{Task: task}
	resp.Done, resp.Total, err = h.tasks.TodayProgress(userID, now)
	if err != nil {
		h.logger.Error("today progress", "error", err)
	} else if resp.Total > 0 {
		resp.Encouragement = h.encouragement(userID, float64(resp.Done)/float64(resp.Total), now)
	}

	h.hub.Publish("task", "completed", task.ID)
	writeJSON(w, http.StatusOK, resp)
}

// Uncomplete handles POST /api/tasks/{id}/uncomplete
func (h *TaskHandler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	task, err := h.tasks.Uncomplete(id, userID)
	if err != nil {
		h.logger.Error("uncomplete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	h.hub.Publish("task", "updated", task.ID)
	writeJSON(w, http.StatusOK, task)
}

// encouragement runs the milestone tracker for one completion ratio
// observation, honoring the user's opt-out.
func (h *TaskHandler) encouragement(userID int64, ratio float64, now time.Time) *push.Payload {
	ns, err := h.settings.GetNotificationSettings(userID)
	if err != nil {
		h.logger.Error("load notification settings", "error", err)
		return nil
	}
	if !ns.EncouragementEnabled {
		return nil
	}

	n := h.tracker.Observe(userID, ratio, now)
	if n == nil {
		return nil
	}
	payload := n.Payload()
	return &payload
}
