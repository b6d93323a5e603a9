// Package http provides HTTP handlers for user authentication and session
// management.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/securedoc/server/internal/middleware"
	"github.com/securedoc/server/internal/service"
)

// AuthService defines the authentication operations required by the HTTP
// handlers.
type AuthService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials and returns the canonical username.
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer produces signed session tokens for verified identities.
type TokenIssuer interface {
	Issue(identity string) (string, error)
}

// AuthHandler handles HTTP requests for registration, login, logout, and
// session introspection.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Tokens issues session tokens on successful login.
	Tokens TokenIssuer
	// CookieDomain scopes the session cookie to the serving domain.
	CookieDomain string
}

// credentialsRequest represents the JSON payload for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionCookie builds the cross-site-capable session cookie. No Max-Age
// is set: the token's own expiry bounds the effective lifetime.
func (h *AuthHandler) sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// Register handles POST /register.
// It expects a JSON body with non-empty username and password fields and
// creates the user, rejecting usernames that are already taken.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrUserExists) {
		http.Error(w, "User already exists, please login", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Successfully Registered"))
}

// Login handles POST /login.
// On success it issues a session token, sets it as the HTTP-only session
// cookie, and also echoes it in the response body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	identity, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrNotRegistered):
		http.Error(w, "User not registered", http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid username or password"})
		return
	case err != nil:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	token, err := h.Tokens.Issue(identity)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessionCookie(token))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

// Logout handles POST /logout by overwriting the session cookie with a
// blank value. Tokens are stateless, so an already issued token stays
// valid until its natural expiry if replayed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie(""))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Logged Out Successfully"))
}

// Authenticate handles GET /authenticate, returning the identity resolved
// from the session cookie. The auth middleware has already verified the
// token by the time this runs.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetUserFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"userId": identity})
}
