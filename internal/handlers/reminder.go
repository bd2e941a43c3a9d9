package handlers

import (
	"net/http"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/auth"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/reminder"
)

// ReminderHandler handles HTTP requests for payment reminders
type ReminderHandler struct {
	evaluator *reminder.Evaluator
}

func NewReminderHandler(evaluator *reminder.Evaluator) *ReminderHandler {
	return &ReminderHandler{evaluator: evaluator}
}

// List handles GET /api/reminders
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	reminders, err := h.evaluator.Evaluate(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "Failed to evaluate reminders", http.StatusInternalServerError)
		return
	}
	if reminders == nil {
		reminders = []reminder.Reminder{}
	}
	writeJSON(w, http.StatusOK, reminders)
}
