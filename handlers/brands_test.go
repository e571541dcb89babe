package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stallion/testhelpers"
)

func TestHandleBrandCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest("POST", "/api/admin/brands", strings.NewReader(`{"name": "Hikvision"}`))
	rec := httptest.NewRecorder()
	if err := HandleBrandCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleBrandCreateRejectsDuplicate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBrand(t, app, "Hikvision")

	req := httptest.NewRequest("POST", "/api/admin/brands", strings.NewReader(`{"name": "Hikvision"}`))
	rec := httptest.NewRecorder()
	if err := HandleBrandCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for duplicate name", rec.Code)
	}
}

func TestHandleBrandListSortedByName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestBrand(t, app, "Dahua")
	testhelpers.CreateTestBrand(t, app, "CP Plus")

	req := httptest.NewRequest("GET", "/api/brands", nil)
	rec := httptest.NewRecorder()
	if err := HandleBrandList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var out struct {
		Brands []map[string]any `json:"brands"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(out.Brands) != 2 {
		t.Fatalf("got %d brands, want 2", len(out.Brands))
	}
	if out.Brands[0]["name"] != "CP Plus" || out.Brands[1]["name"] != "Dahua" {
		t.Errorf("brands not ordered by name: %v", out.Brands)
	}
}
