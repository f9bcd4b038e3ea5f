package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/transport"
)

type ServiceAPI interface {
	Login(ctx context.Context, username, password string) (*session.Session, error)
	Logout(ctx context.Context, token string)
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	sess, err := h.Service.Login(r.Context(), dto.Username, dto.Password)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err, "username", dto.Username)
		h.WriteAppError(w, err)
		return
	}

	h.Logger.Info("user logged in", "user_id", sess.User.ID, "role", sess.User.Role)
	h.WriteJSON(w, http.StatusOK, LoginResponse{Success: true, Token: sess.Token, User: sess.User})
}

// Logout drops the cached session of the bearer token. The token itself
// stays valid on the backend until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	h.Service.Logout(r.Context(), sess.Token)
	h.Logger.Info("user logged out", "user_id", sess.User.ID)
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	h.WriteJSON(w, http.StatusOK, NewMeResponse(sess))
}
