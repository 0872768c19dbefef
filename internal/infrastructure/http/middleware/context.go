package middleware

import (
	"context"

	"github.com/gatekit/gatekit/internal/domain"
)

type contextKey string

const appContextKey contextKey = "appContext"

// WithAppContext injects the per-request application context.
func WithAppContext(ctx context.Context, appCtx domain.AppContext) context.Context {
	return context.WithValue(ctx, appContextKey, appCtx)
}

// AppContextFromContext returns the application context, or the anonymous
// zero value when the auth middleware did not run.
func AppContextFromContext(ctx context.Context) domain.AppContext {
	v := ctx.Value(appContextKey)
	if v == nil {
		return domain.AppContext{}
	}
	appCtx, _ := v.(domain.AppContext)
	return appCtx
}
