package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/service_interfaces"
)

type actorKey struct{}

// BasicAuth expects the actor id as the username and the actor's PIN as the
// password. The resolved actor is stored on the request context.
func BasicAuth(auth service_interfaces.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				logger.Error("basic auth middleware missing authenticator", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			username, pin, ok := r.BasicAuth()
			actorID, parseErr := strconv.ParseInt(strings.TrimSpace(username), 10, 64)
			if !ok || parseErr != nil || actorID <= 0 {
				unauthorized(w, r)
				return
			}

			actor, err := auth.Authenticate(r.Context(), actorID, pin)
			if err != nil {
				if !errors.Is(err, commons.ErrUnauthorized) {
					logger.Error("basic auth middleware authentication failed", err, logger.Fields{
						"method":  r.Method,
						"path":    r.URL.Path,
						"actorId": actorID,
					})
					http.Error(w, "unable to authenticate request", http.StatusInternalServerError)
					return
				}
				unauthorized(w, r)
				return
			}

			logger.Info("basic auth middleware authorized request", logger.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"actorId": actor.ID,
				"role":    string(actor.Role),
			})
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	logger.Info("basic auth middleware unauthorized request", logger.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"credentials": "invalid_or_missing",
	})
	w.Header().Set("WWW-Authenticate", `Basic realm="retail-ledger"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
