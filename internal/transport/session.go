package transport

import (
	"net/http"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/session"
)

// Session returns the session the auth middleware attached to r, answering
// 401 itself when there is none.
func (h *BaseHandler) Session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.Logger.Error("session not found in context", "path", r.URL.Path)
		h.WriteAppError(w, internal.ErrNoSession)
		return nil, false
	}
	return sess, true
}
