package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/auth"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
	"github.com/gorilla/mux"
)

// RenterHandler handles HTTP requests for owner-renter connections
type RenterHandler struct {
	renters *services.RenterService
}

func NewRenterHandler(renterService *services.RenterService) *RenterHandler {
	return &RenterHandler{renters: renterService}
}

// AddRenter handles POST /api/renter
func (h *RenterHandler) AddRenter(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	var in services.AddRenterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	connection, err := h.renters.AddRenter(r.Context(), identity.UserID, in)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, connection)
}

// SendRequest handles POST /api/renter/request
func (h *RenterHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	connection, err := h.renters.SendRequest(r.Context(), identity.UserID, body.Name, body.Email)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, connection)
}

// RequestOwner handles POST /api/owner/request
func (h *RenterHandler) RequestOwner(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	connection, err := h.renters.RequestOwner(r.Context(), identity.UserID, body.Email)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, connection)
}

// ListRenters handles GET /api/renters
func (h *RenterHandler) ListRenters(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	renters, err := h.renters.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch renters", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, renters)
}

// PendingRequests handles GET /api/requests
func (h *RenterHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	pending, err := h.renters.PendingForUser(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// MyConnection handles GET /api/connection
func (h *RenterHandler) MyConnection(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	connection, err := h.renters.ConnectionForUser(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch connection", http.StatusInternalServerError)
		return
	}
	if connection == nil {
		http.Error(w, "No accepted connection", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, connection)
}

// Respond handles POST /api/renter/{renterID}/respond
func (h *RenterHandler) Respond(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)
	var body struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.renters.Respond(r.Context(), vars["renterID"], identity.UserID, body.Accept); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditRenter handles PATCH /api/renter/{renterID}
func (h *RenterHandler) EditRenter(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)
	var in services.EditRenterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	connection, err := h.renters.EditRenter(r.Context(), vars["renterID"], identity.UserID, in)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, connection)
}

// DeleteRenter handles DELETE /api/renter/{renterID}
func (h *RenterHandler) DeleteRenter(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	vars := mux.Vars(r)
	if err := h.renters.DeleteRenter(r.Context(), vars["renterID"], identity.UserID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
