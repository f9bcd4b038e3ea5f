package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/transport"
)

// RequirePermission lets the request through only when the session in the
// context holds action on resource. Mount it after Authenticate.
func RequirePermission(resource permission.Resource, action permission.Action, lg *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				base.WriteAppError(w, internal.ErrNoSession)
				return
			}

			if !sess.HasPermission(resource, action) {
				base.Logger.Warn("Access denied: role lacks permission",
					"user_id", sess.User.ID,
					"role", sess.User.Role,
					"resource", resource,
					"action", action)
				base.WriteAppError(w, internal.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
