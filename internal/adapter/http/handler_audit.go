package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/usecase"
)

// AuditHandler exposes the audit trail over REST.
type AuditHandler struct {
	auditUseCase *usecase.AuditUseCase
	auth         *AuthMiddleware
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditUseCase *usecase.AuditUseCase, auth *AuthMiddleware) *AuditHandler {
	return &AuditHandler{auditUseCase: auditUseCase, auth: auth}
}

// RegisterRoutes registers audit routes on the router
func (h *AuditHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/audit-log", h.auth.RequireAuth(h.FindAll)).Methods(http.MethodGet)
	router.HandleFunc("/audit-log", h.auth.RequireAuth(h.Record)).Methods(http.MethodPost)
}

// FindAll handles GET /audit-log (Owner/Admin only)
func (h *AuditHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	entries, err := h.auditUseCase.FindAll(r.Context(), user, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Audit log retrieved", entries)
}

// Record handles POST /audit-log
func (h *AuditHandler) Record(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	var req usecase.RecordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewInvalidRequest("invalid request body"))
		return
	}

	if err := h.auditUseCase.Record(r.Context(), user, req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusAccepted, "Action recorded", nil)
}
