package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stallion/testhelpers"
)

func TestHandleProductCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body := `{
		"name": "2MP Dome Camera",
		"category": "camera",
		"purchase_price": 1200,
		"selling_price": 1800,
		"unit_type": "piece",
		"specs": {"camera": {"resolution": "2MP", "lens_mm": 3.6, "body_type": "dome", "night_ir": true}}
	}`
	req := httptest.NewRequest("POST", "/api/admin/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	if err := HandleProductCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if out["name"] != "2MP Dome Camera" || out["category"] != "camera" {
		t.Errorf("unexpected product response: %v", out)
	}
	if out["category_label"] != "Cameras" {
		t.Errorf("category_label = %v, want Cameras", out["category_label"])
	}
}

func TestHandleProductCreateValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"category": "camera", "unit_type": "piece"}`},
		{"unknown category", `{"name": "Thing", "category": "drone", "unit_type": "piece"}`},
		{"negative price", `{"name": "Cam", "category": "camera", "unit_type": "piece", "purchase_price": -5}`},
		{"bad unit type", `{"name": "Cam", "category": "camera", "unit_type": "dozen"}`},
		{"specs variant missing", `{"name": "Cam", "category": "camera", "unit_type": "piece"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/admin/products", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			if err := HandleProductCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleProductListCategoryFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProduct(t, app, "2MP Dome", "camera", 1200, 1800)
	testhelpers.CreateTestProduct(t, app, "4ch DVR", "recorder", 2800, 3900)
	testhelpers.CreateTestProduct(t, app, "1TB HDD", "storage", 3100, 3800)

	req := httptest.NewRequest("GET", "/api/products?category=camera", nil)
	rec := httptest.NewRecorder()
	if err := HandleProductList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(out.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(out.Products))
	}
	if out.Products[0]["name"] != "2MP Dome" {
		t.Errorf("filtered product = %v, want 2MP Dome", out.Products[0]["name"])
	}
}

func TestHandleProductViewNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest("GET", "/api/products/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	if err := HandleProductView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleProductDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	product := testhelpers.CreateTestProduct(t, app, "2MP Dome", "camera", 1200, 1800)

	req := httptest.NewRequest("DELETE", "/api/admin/products/"+product.Id, nil)
	req.SetPathValue("id", product.Id)
	rec := httptest.NewRecorder()
	if err := HandleProductDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, err := app.FindRecordById("products", product.Id); err == nil {
		t.Error("product still exists after delete")
	}
}
