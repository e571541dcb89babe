package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stallion/testhelpers"
)

func TestHandleSettingsViewDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest("GET", "/api/admin/settings", nil)
	rec := httptest.NewRecorder()
	if err := HandleSettingsView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if out["company_name"] != "Stallion IT Solutions" {
		t.Errorf("company_name = %v, want the default", out["company_name"])
	}
}

func TestHandleSettingsUpdateUpsert(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// first update creates the row
	body := `{"company_phone": "020-12345678", "quote_prefix": "STL"}`
	req := httptest.NewRequest("PATCH", "/api/admin/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := HandleSettingsUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	// second update patches only one field and keeps the rest
	body = `{"company_email": "sales@stallionit.example"}`
	req = httptest.NewRequest("PATCH", "/api/admin/settings", strings.NewReader(body))
	rec = httptest.NewRecorder()
	if err := HandleSettingsUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if out["company_phone"] != "020-12345678" {
		t.Errorf("company_phone = %v, want the value from the first update", out["company_phone"])
	}
	if out["quote_prefix"] != "STL" {
		t.Errorf("quote_prefix = %v, want STL", out["quote_prefix"])
	}
	if out["company_email"] != "sales@stallionit.example" {
		t.Errorf("company_email = %v", out["company_email"])
	}

	// still a single settings row
	records, err := app.FindRecordsByFilter("settings", "id != ''", "", 0, 0, nil)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d settings rows, want 1", len(records))
	}
}
