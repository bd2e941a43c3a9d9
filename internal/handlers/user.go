package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/auth"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
	"github.com/Premgrohit45/pay-my-bill-pmb/internal/session"
)

type UserHandler struct {
	session *session.Service
	tokens  *auth.Manager
}

func NewUserHandler(sessionService *session.Service, tokens *auth.Manager) *UserHandler {
	return &UserHandler{session: sessionService, tokens: tokens}
}

// Register handles POST /api/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user.Username == "" || user.Email == "" || user.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}
	if user.Role != models.RoleOwner && user.Role != models.RoleRenter {
		http.Error(w, "role must be owner or renter", http.StatusBadRequest)
		return
	}

	registered, err := h.session.Register(r.Context(), user)
	if err != nil {
		if errors.Is(err, session.ErrExists) {
			http.Error(w, err.Error(), http.StatusConflict)
		} else {
			http.Error(w, "Failed to register: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	token, err := h.tokens.Issue(*registered)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}
	registered.Password = ""
	writeJSON(w, http.StatusCreated, map[string]interface{}{"token": token, "user": registered})
}

// Login handles POST /api/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The username field also accepts the account email.
	user, err := h.session.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidLogin) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		} else {
			http.Error(w, "Failed to log in: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	token, err := h.tokens.Issue(*user)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user})
}

// Logout handles POST /api/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		http.Error(w, "Failed to log out: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	user, err := h.session.UserByID(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /api/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())
	var partial models.User
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.session.UpdateUser(r.Context(), identity.UserID, partial)
	if err != nil {
		http.Error(w, "Failed to update profile: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if updated == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	updated.Password = ""
	writeJSON(w, http.StatusOK, updated)
}
