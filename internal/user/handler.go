package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, checker permission.Checker) ([]Account, error)
	Create(ctx context.Context, checker permission.Checker, dto CreateDTO) error
	Update(ctx context.Context, checker permission.Checker, id string, dto UpdateDTO) error
	Deactivate(ctx context.Context, checker permission.Checker, id string) error
	ToggleActive(ctx context.Context, checker permission.Checker, id string) (bool, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	accounts, err := h.Service.List(r.Context(), sess)
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err, "user_id", sess.User.ID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Users: accounts})
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	var dto CreateDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	if err := h.Service.Create(r.Context(), sess, dto); err != nil {
		h.Logger.Error("CreateUser: service error", "error", err, "username", dto.Username)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

// UpdateUser handles PUT /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var dto UpdateDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	if err := h.Service.Update(r.Context(), sess, id, dto); err != nil {
		h.Logger.Error("UpdateUser: service error", "error", err, "target_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}

// DeactivateUser handles DELETE /users/{id}
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Deactivate(r.Context(), sess, id); err != nil {
		h.Logger.Error("DeactivateUser: service error", "error", err, "target_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deactivated"})
}

// ToggleActive handles POST /users/{id}/toggle-active
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	active, err := h.Service.ToggleActive(r.Context(), sess, id)
	if err != nil {
		h.Logger.Error("ToggleActive: service error", "error", err, "target_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"isActive": active})
}
