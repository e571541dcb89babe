package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stallion/testhelpers"
)

func TestHandleAlertCreateAndToggle(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body := `{"message": "Monsoon offer: free installation", "level": "promo", "active": true}`
	req := httptest.NewRequest("POST", "/api/admin/alerts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := HandleAlertCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("create handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	id := created["id"].(string)

	req = httptest.NewRequest("POST", "/api/admin/alerts/"+id+"/toggle", nil)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	if err := HandleAlertToggle(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("toggle handler error: %v", err)
	}

	var toggled map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if toggled["active"] != false {
		t.Errorf("active = %v after toggle, want false", toggled["active"])
	}
}

func TestHandleAlertCreateValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty message", `{"message": "  ", "level": "info"}`},
		{"unknown level", `{"message": "hello", "level": "critical"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/admin/alerts", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			if err := HandleAlertCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestHandleAlertListActiveFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	for _, body := range []string{
		`{"message": "Active banner", "level": "info", "active": true}`,
		`{"message": "Inactive banner", "level": "warning", "active": false}`,
	} {
		req := httptest.NewRequest("POST", "/api/admin/alerts", strings.NewReader(body))
		rec := httptest.NewRecorder()
		if err := HandleAlertCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("create handler error: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/api/alerts?active=1", nil)
	rec := httptest.NewRecorder()
	if err := HandleAlertList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("list handler error: %v", err)
	}

	var out struct {
		Alerts []map[string]any `json:"alerts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(out.Alerts) != 1 {
		t.Fatalf("got %d active alerts, want 1", len(out.Alerts))
	}
	if out.Alerts[0]["message"] != "Active banner" {
		t.Errorf("active alert = %v", out.Alerts[0]["message"])
	}
}
