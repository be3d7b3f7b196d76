package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/usecase"
)

// AuthHandler exposes login and the "who am I" endpoint.
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	auth        *AuthMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUseCase *usecase.AuthUseCase, auth *AuthMiddleware) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase, auth: auth}
}

// RegisterRoutes registers auth routes on the router
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/me", h.auth.RequireAuth(h.Me)).Methods(http.MethodGet)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewInvalidRequest("invalid request body"))
		return
	}

	resp, err := h.authUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.IsAccessDenied(err) {
			writeUnauthorized(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", resp)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	full, err := h.authUseCase.ResolveUser(r.Context(), claimsFromUser(user))
	if err != nil {
		// Token is valid but the record is gone; fall back to the claims.
		writeSuccess(w, http.StatusOK, "Authenticated user", user)
		return
	}

	writeSuccess(w, http.StatusOK, "Authenticated user", full)
}
