package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/auth"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
	"github.com/gorilla/mux"
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: paymentService}
}

// ListPayments handles GET /api/payments. Owners see what they billed,
// renters what they owe.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	var (
		payments []models.Payment
		err      error
	)
	if identity.Role == models.RoleOwner || identity.Role == models.RoleAdmin {
		payments, err = h.payments.ListByOwner(r.Context(), identity.UserID)
	} else {
		payments, err = h.payments.ListByRenter(r.Context(), identity.UserID)
	}
	if err != nil {
		http.Error(w, "Failed to fetch payments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// GetPayment handles GET /api/payment/{paymentID}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)

	payment, err := h.payments.Get(r.Context(), vars["paymentID"], identity.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// SubmitProof handles POST /api/payment/{paymentID}/proof
func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)
	var body struct {
		ProofImage string `json:"proofImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.payments.SubmitProof(r.Context(), vars["paymentID"], identity.UserID, body.ProofImage)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// Approve handles POST /api/payment/{paymentID}/approve
func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)

	payment, err := h.payments.Approve(r.Context(), vars["paymentID"], identity.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
