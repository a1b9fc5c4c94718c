package handlers

import (
	"errors"
	"log"
	"net/http"

	"feedback-backend/internal/auth"
	"feedback-backend/internal/models"
)

// TokenIssuer exchanges the admin credential pair for a bearer token.
type TokenIssuer interface {
	Login(username, password string) (string, error)
}

type AuthHandler struct {
	issuer TokenIssuer
}

func NewAuthHandler(issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// --- POST /admin/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.issuer.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Printf("Failed admin login for %q from %s", req.Username, r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Printf("Error issuing admin token: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, http.StatusOK, models.LoginResponse{Token: token})
}
