package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"stallion/services"
	"stallion/testhelpers"
)

func TestGetSiteSettings_FromContext(t *testing.T) {
	expected := services.SiteSettings{Key: "site", CompanyName: "Custom Co"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), SiteSettingsKey, expected)
	req = req.WithContext(ctx)

	got := GetSiteSettings(req)
	if got.CompanyName != "Custom Co" {
		t.Errorf("expected CompanyName 'Custom Co', got %q", got.CompanyName)
	}
}

func TestGetSiteSettings_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	got := GetSiteSettings(req)
	if got.CompanyName != "Stallion IT Solutions" {
		t.Errorf("expected default company name, got %q", got.CompanyName)
	}
}

func TestSiteSettingsMiddleware(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	middleware := SiteSettingsMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	// e.Next() with no handler set returns nil in PocketBase
	if err := middleware(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	settings := GetSiteSettings(e.Request)
	if settings.Key != "site" {
		t.Errorf("settings key = %q, want site", settings.Key)
	}
}

func TestRequireAdminToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name       string
		token      string
		authHeader string
		wantStatus int
	}{
		{"disabled guard lets everything through", "", "", 0},
		{"valid bearer token", "s3cret", "Bearer s3cret", 0},
		{"wrong token", "s3cret", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := RequireAdminToken(tt.token)(e); err != nil {
				t.Fatalf("guard error: %v", err)
			}
			if tt.wantStatus == 0 {
				if rec.Code == http.StatusUnauthorized {
					t.Error("guard wrote 401 for an authorized request")
				}
			} else if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
