package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/store"
)

const defaultActivityLimit = 50

type ActivityHandler struct {
	activities *store.ActivityStore
	logger     *slog.Logger
}

func NewActivityHandler(activities *store.ActivityStore, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	activities, err := h.activities.ListByUser(auth.UserID(r.Context()), limit)
	if err != nil {
		h.logger.Error("list activity", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch activity")
		return
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
}
