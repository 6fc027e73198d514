package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/beautytrade/inventory-backend/api/responses"
	pkgerrors "github.com/beautytrade/inventory-backend/pkg/errors"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

const (
	apiRateLimit  = 300
	apiRateWindow = time.Minute
)

type fixedWindowStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit throttles authenticated traffic per account with a fixed window.
// Unauthenticated requests fall back to the client IP.
func RateLimit(store fixedWindowStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scope := fmt.Sprintf("api:%d", AccountIDFromContext(ctx))
			if AccountIDFromContext(ctx) == 0 {
				scope = "api:ip:" + clientIP(r)
			}

			allowed, count, err := store.FixedWindowAllow(ctx, scope, apiRateLimit, apiRateWindow)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"scope":    scope,
						"attempts": count,
						"limit":    apiRateLimit,
					}), "api.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
