package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/crm-console/internal/crmapi"
	"github.com/frahmantamala/crm-console/internal/session"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/frahmantamala/crm-console/pkg/logger"
)

// TokenResolver is satisfied by session.Resolver.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

// Authenticate resolves the bearer token into a session and stores it in
// the request context, together with the token backend calls must carry.
// Requests without a valid token get 401.
func Authenticate(resolver TokenResolver, lg *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := resolver.Resolve(r.Context(), transport.BearerToken(r))
			if err != nil {
				base.Logger.Warn("authentication failed", "error", err, "path", r.URL.Path)
				base.WriteAppError(w, err)
				return
			}

			ctx := session.NewContext(r.Context(), sess)
			ctx = crmapi.ContextWithToken(ctx, sess.Token)
			ctx = logger.With(ctx, "user_id", sess.User.ID, "role", sess.User.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
