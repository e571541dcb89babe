package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stallion/testhelpers"
)

func TestHandleVendorCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body := `{"name": "Secure Supplies", "city": "Pune", "phone": "9822001122", "gstin": "27AAACS1234A1Z5"}`
	req := httptest.NewRequest("POST", "/api/admin/vendors", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := HandleVendorCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if out["name"] != "Secure Supplies" || out["city"] != "Pune" {
		t.Errorf("unexpected vendor response: %v", out)
	}
}

func TestHandleVendorCreateRequiresName(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest("POST", "/api/admin/vendors", strings.NewReader(`{"name": "   "}`))
	rec := httptest.NewRecorder()
	if err := HandleVendorCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandleVendorUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	vendor := testhelpers.CreateTestVendor(t, app, "Secure Supplies")

	body := `{"name": "Secure Supplies Pvt Ltd", "city": "Mumbai"}`
	req := httptest.NewRequest("PATCH", "/api/admin/vendors/"+vendor.Id, strings.NewReader(body))
	req.SetPathValue("id", vendor.Id)
	rec := httptest.NewRecorder()
	if err := HandleVendorUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("vendors", vendor.Id)
	if err != nil {
		t.Fatalf("reload vendor: %v", err)
	}
	if saved.GetString("name") != "Secure Supplies Pvt Ltd" {
		t.Errorf("stored name = %q", saved.GetString("name"))
	}
}

func TestHandleVendorDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	vendor := testhelpers.CreateTestVendor(t, app, "Secure Supplies")

	req := httptest.NewRequest("DELETE", "/api/admin/vendors/"+vendor.Id, nil)
	req.SetPathValue("id", vendor.Id)
	rec := httptest.NewRecorder()
	if err := HandleVendorDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, err := app.FindRecordById("vendors", vendor.Id); err == nil {
		t.Error("vendor still exists after delete")
	}
}
