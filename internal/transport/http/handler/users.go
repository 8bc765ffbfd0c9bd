package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-users-api/internal/application/user"
	"github.com/go-users-api/internal/domain"
	"github.com/go-users-api/internal/pkg/validate"
	"github.com/go-users-api/internal/transport/http/middleware"
)

// UserHandler exposes the account management endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// List returns every registered account. Admin only, enforced by the router.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns a single account. Users may read themselves, admins anyone.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !canAccess(r, id) {
		writeJSON(w, http.StatusForbidden, ErrorEnvelope{Error: "insufficient permissions"})
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Update applies a partial update. Users may edit themselves, admins
// anyone. Only admins may change roles.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !canAccess(r, id) {
		writeJSON(w, http.StatusForbidden, ErrorEnvelope{Error: "insufficient permissions"})
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorEnvelope{Error: err.Error()})
		return
	}
	if req.Role != nil && !isAdmin(r) {
		writeJSON(w, http.StatusForbidden, ErrorEnvelope{Error: "only admins may change roles"})
		return
	}

	u, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Delete removes an account. Admin only, enforced by the router.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "user deleted"})
}

// canAccess reports whether the caller is the target user or an admin.
func canAccess(r *http.Request, targetID string) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return false
	}
	return claims.Subject == targetID || claims.Role == domain.RoleAdmin
}

func isAdmin(r *http.Request) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	return ok && claims.Role == domain.RoleAdmin
}
