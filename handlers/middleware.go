package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

type contextKey string

const SiteSettingsKey contextKey = "siteSettings"

// GetSiteSettings extracts the per-request site settings loaded by
// SiteSettingsMiddleware, falling back to defaults outside the middleware.
func GetSiteSettings(r *http.Request) services.SiteSettings {
	if val, ok := r.Context().Value(SiteSettingsKey).(services.SiteSettings); ok {
		return val
	}
	return services.DefaultSiteSettings()
}

// SiteSettingsMiddleware loads the site settings row once per request and
// stores it in the request context so handlers and exports read a single
// consistent snapshot.
func SiteSettingsMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := context.WithValue(e.Request.Context(), SiteSettingsKey, loadSiteSettings(app))
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// RequireAdminToken guards the admin API with a shared bearer token. With an
// empty token the guard is disabled, which keeps local development friction
// free.
func RequireAdminToken(token string) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if token == "" {
			return e.Next()
		}
		auth := e.Request.Header.Get("Authorization")
		if strings.TrimPrefix(auth, "Bearer ") != token {
			return apiError(e, http.StatusUnauthorized, "admin token required")
		}
		return e.Next()
	}
}
