package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"taskflow/internal/auth"
	"taskflow/internal/store"
)

type UserHandler struct {
	users  *store.UserStore
	logger *slog.Logger
}

func NewUserHandler(users *store.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// authorizeSelf checks that the path user id matches the authenticated
// identity. Writes the error response itself and reports success.
func (h *UserHandler) authorizeSelf(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	if id != auth.UserID(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return 0, false
	}
	return id, true
}

type profileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeSelf(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FullName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "full name and email required")
		return
	}

	user, err := h.users.UpdateProfile(id, req.FullName, req.Email)
	if errors.Is(err, store.ErrDuplicateEmail) {
		writeError(w, http.StatusBadRequest, "email already in use")
		return
	}
	if err != nil {
		h.logger.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "profile updated successfully",
		"user":    user,
	})
}

// UpdatePreferences acknowledges the request without persisting
// anything. The endpoint exists for client compatibility; storage was
// deliberately not invented for it.
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorizeSelf(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "preferences updated successfully"})
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

// UploadAvatar stores the opaque avatar payload verbatim. No size or
// format bounds are imposed here; transport limits are left to the
// deployment.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizeSelf(w, r)
	if !ok {
		return
	}

	var req avatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := h.users.UpdateAvatar(id, req.Avatar)
	if err != nil {
		h.logger.Error("update avatar", "error", err)
		writeError(w, http.StatusInternalServerError, "avatar upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "avatar updated successfully",
		"avatar":  user.Avatar,
	})
}
