package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/codewatch/exam-service/internal/models"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeStatus(w, "User deleted")
}

func (h *Handler) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.AdminResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Email and new password are required")
		return
	}

	if err := h.userService.AdminResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeStatus(w, "Password reset successful")
}

func (h *Handler) AllSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) AllEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}
