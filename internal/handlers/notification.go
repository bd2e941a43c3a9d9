package handlers

import (
	"net/http"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/auth"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
	"github.com/gorilla/mux"
)

// NotificationHandler handles HTTP requests for notifications
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notificationService}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	notifications, err := h.notifications.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead handles PATCH /api/notification/{notificationID}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)
	if err := h.notifications.MarkRead(r.Context(), vars["notificationID"], identity.UserID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	if err := h.notifications.MarkAllRead(r.Context(), identity.UserID); err != nil {
		http.Error(w, "Failed to update notifications", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/notification/{notificationID}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)
	if err := h.notifications.Delete(r.Context(), vars["notificationID"], identity.UserID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
