package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stallion/services"
	"stallion/testhelpers"
)

func TestHandleEnquiryCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	mailer := services.NewMailerFromEnv() // no SMTP_HOST in tests, mail is skipped

	body := `{"kind": "audit", "name": "Ravi Kumar", "phone": "9876543210", "message": "Need a site survey for a shop"}`
	req := httptest.NewRequest("POST", "/api/enquiries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := HandleEnquiryCreate(app, mailer)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindRecordsByFilter("enquiries", "id != ''", "", 0, 0, nil)
	if err != nil {
		t.Fatalf("list enquiries: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d enquiries, want 1", len(records))
	}
	if records[0].GetString("kind") != "audit" || records[0].GetString("name") != "Ravi Kumar" {
		t.Errorf("stored enquiry = %q/%q", records[0].GetString("kind"), records[0].GetString("name"))
	}
}

func TestHandleEnquiryCreateValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	mailer := services.NewMailerFromEnv()

	tests := []struct {
		name string
		body string
	}{
		{"unknown kind", `{"kind": "sales", "name": "Ravi", "phone": "9876543210"}`},
		{"missing name", `{"kind": "career", "phone": "9876543210"}`},
		{"no contact details", `{"kind": "amc", "name": "Ravi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/enquiries", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			if err := HandleEnquiryCreate(app, mailer)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestHandleEnquiryListKindFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	mailer := services.NewMailerFromEnv()

	for _, body := range []string{
		`{"kind": "audit", "name": "Ravi", "phone": "9876543210"}`,
		`{"kind": "career", "name": "Meena", "email": "meena@example.com"}`,
	} {
		req := httptest.NewRequest("POST", "/api/enquiries", strings.NewReader(body))
		rec := httptest.NewRecorder()
		if err := HandleEnquiryCreate(app, mailer)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("create handler error: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/api/admin/enquiries?kind=career", nil)
	rec := httptest.NewRecorder()
	if err := HandleEnquiryList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("list handler error: %v", err)
	}

	var out struct {
		Enquiries []map[string]any `json:"enquiries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(out.Enquiries) != 1 {
		t.Fatalf("got %d enquiries, want 1", len(out.Enquiries))
	}
	if out.Enquiries[0]["name"] != "Meena" {
		t.Errorf("filtered enquiry = %v", out.Enquiries[0]["name"])
	}
}
