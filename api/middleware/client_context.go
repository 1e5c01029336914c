package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quickmart/storefront-backend/pkg/logger"
)

const (
	clientIDHeader = "X-Client-Id"

	// DefaultClientID scopes requests that carry no client header, matching
	// a storefront running without any session identity.
	DefaultClientID = "default"
)

type contextKey string

const ctxClientID contextKey = "client_id"

// ClientContext resolves the cart/order scope for the request. The
// storefront sends a stable anonymous id per browser; absent that, all
// traffic shares the default scope.
func ClientContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := strings.TrimSpace(r.Header.Get(clientIDHeader))
			if clientID == "" {
				clientID = DefaultClientID
			}

			ctx := context.WithValue(r.Context(), ctxClientID, clientID)
			if logg != nil {
				ctx = logg.WithClientID(ctx, clientID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFromContext returns the request's client scope.
func ClientIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return DefaultClientID
	}
	if v, ok := ctx.Value(ctxClientID).(string); ok && v != "" {
		return v
	}
	return DefaultClientID
}
