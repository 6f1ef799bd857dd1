package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"taskflow/internal/activity"
	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/store"
	"taskflow/internal/websocket"
)

type TaskHandler struct {
	tasks    *store.TaskStore
	recorder *activity.Recorder
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewTaskHandler(tasks *store.TaskStore, recorder *activity.Recorder, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, recorder: recorder, hub: hub, logger: logger}
}

// taskRequest uses pointers so a partial update can tell an absent field
// from an explicit empty value. due_date is kept raw because an explicit
// null clears the stored value, which a *string cannot distinguish from
// an absent field.
type taskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Priority    *string         `json:"priority"`
	Status      *string         `json:"status"`
	DueDate     json.RawMessage `json:"due_date"`
}

// dueDate reports the requested due date and whether the field was
// present in the body at all.
func (r taskRequest) dueDate() (value *string, present bool, err error) {
	if r.DueDate == nil {
		return nil, false, nil
	}
	if string(r.DueDate) == "null" {
		return nil, true, nil
	}
	var s string
	if err := json.Unmarshal(r.DueDate, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListByUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	title := ""
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	priority := model.PriorityMedium
	if req.Priority != nil {
		priority = model.Priority(*req.Priority)
	}
	status := model.StatusTodo
	if req.Status != nil {
		status = model.Status(*req.Status)
	}
	if !priority.Valid() {
		writeError(w, http.StatusBadRequest, "invalid priority")
		return
	}
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	due, _, err := req.dueDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due date")
		return
	}

	task, err := h.tasks.Create(userID, title, description, priority, status, due)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.recorder.Record(userID, &task.ID, model.ActionCreated, "Created task: "+task.Title)
	h.hub.Broadcast(websocket.TaskCreated(task))

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "task created successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	prior, err := h.tasks.GetByIDForUser(userID, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	// Merge onto the current row: absent fields keep their stored value.
	title := prior.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
	}
	description := prior.Description
	if req.Description != nil {
		description = *req.Description
	}
	priority := prior.Priority
	if req.Priority != nil {
		priority = model.Priority(*req.Priority)
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, "invalid priority")
			return
		}
	}
	status := prior.Status
	if req.Status != nil {
		status = model.Status(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
	}
	dueDate := prior.DueDate
	if due, present, err := req.dueDate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid due date")
		return
	} else if present {
		dueDate = due
	}

	var changes []string
	if status != prior.Status {
		changes = append(changes, fmt.Sprintf("Status: %s → %s", prior.Status, status))
	}
	if priority != prior.Priority {
		changes = append(changes, fmt.Sprintf("Priority: %s → %s", prior.Priority, priority))
	}
	if title != prior.Title {
		changes = append(changes, "Title changed")
	}

	task, err := h.tasks.Update(userID, id, title, description, priority, status, dueDate)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.logger.Error("update task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	// Description and due-date edits are intentionally not logged.
	if len(changes) > 0 {
		h.recorder.Record(userID, &id, model.ActionUpdated, "Updated task: "+strings.Join(changes, ", "))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "task updated successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	prior, err := h.tasks.GetByIDForUser(userID, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	if err := h.tasks.Delete(userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		h.logger.Error("delete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}

	// The task row is gone, so the entry keeps only the title.
	h.recorder.Record(userID, nil, model.ActionDeleted, "Deleted task: "+prior.Title)

	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted successfully"})
}
