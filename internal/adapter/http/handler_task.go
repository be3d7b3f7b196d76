package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/usecase"
)

// TaskHandler exposes the task orchestrator over REST.
type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
	auth        *AuthMiddleware
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskUseCase *usecase.TaskUseCase, auth *AuthMiddleware) *TaskHandler {
	return &TaskHandler{taskUseCase: taskUseCase, auth: auth}
}

// RegisterRoutes registers task routes on the router
func (h *TaskHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tasks", h.auth.RequireAuth(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/tasks", h.auth.RequireAuth(h.FindAll)).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", h.auth.RequireAuth(h.Update)).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id}/status", h.auth.RequireAuth(h.UpdateStatus)).Methods(http.MethodPatch)
	router.HandleFunc("/tasks/{id}", h.auth.RequireAuth(h.Delete)).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{id}/audit-logs", h.auth.RequireAuth(h.GetAuditLogs)).Methods(http.MethodGet)
}

// Create handles POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	var req usecase.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewInvalidRequest("invalid request body"))
		return
	}

	task, err := h.taskUseCase.Create(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Task created", task)
}

// FindAll handles GET /tasks
func (h *TaskHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	tasks, err := h.taskUseCase.FindAll(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Tasks retrieved", tasks)
}

// Update handles PUT /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	var update domain.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, domain.NewInvalidRequest("invalid request body"))
		return
	}

	task, err := h.taskUseCase.Update(r.Context(), user, mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Task updated", task)
}

type updateStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// UpdateStatus handles PATCH /tasks/{id}/status
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewInvalidRequest("invalid request body"))
		return
	}
	if !req.Status.IsValid() {
		writeError(w, domain.NewInvalidRequest("invalid status: "+string(req.Status)))
		return
	}

	task, err := h.taskUseCase.UpdateStatus(r.Context(), user, mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Task status updated", task)
}

// Delete handles DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	if err := h.taskUseCase.Delete(r.Context(), user, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Task deleted", nil)
}

// GetAuditLogs handles GET /tasks/{id}/audit-logs
func (h *TaskHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Authentication required")
		return
	}

	entries, err := h.taskUseCase.GetAuditLogs(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Audit logs retrieved", entries)
}
