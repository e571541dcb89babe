package handlers

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

var enquiryKinds = []string{"audit", "career", "amc"}

type enquiryPayload struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// HandleEnquiryCreate stores a public enquiry and notifies the company
// mailbox. Mail delivery is best effort and never blocks the response.
func HandleEnquiryCreate(app *pocketbase.PocketBase, mailer *services.Mailer) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload enquiryPayload
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if msgs := validateEnquiry(payload); len(msgs) > 0 {
			return apiValidation(e, msgs)
		}

		col, err := app.FindCollectionByNameOrId("enquiries")
		if err != nil {
			log.Printf("enquiries: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}
		rec := core.NewRecord(col)
		rec.Set("kind", payload.Kind)
		rec.Set("name", strings.TrimSpace(payload.Name))
		rec.Set("email", strings.TrimSpace(payload.Email))
		rec.Set("phone", strings.TrimSpace(payload.Phone))
		rec.Set("message", strings.TrimSpace(payload.Message))
		if err := app.Save(rec); err != nil {
			log.Printf("enquiries: could not save: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save enquiry")
		}

		if mailer.Enabled() {
			site := loadSiteSettings(app)
			go notifyEnquiry(mailer, site, payload)
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": rec.Id})
	}
}

// HandleEnquiryList lists enquiries, newest first, optionally by kind.
func HandleEnquiryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if kind := e.Request.URL.Query().Get("kind"); kind != "" {
			filter = "kind = {:kind}"
			params["kind"] = kind
		}
		records, err := app.FindRecordsByFilter("enquiries", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("enquiries: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list enquiries")
		}
		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, map[string]any{
				"id":      rec.Id,
				"kind":    rec.GetString("kind"),
				"name":    rec.GetString("name"),
				"email":   rec.GetString("email"),
				"phone":   rec.GetString("phone"),
				"message": rec.GetString("message"),
				"created": rec.GetDateTime("created").String(),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"enquiries": out})
	}
}

func validateEnquiry(p enquiryPayload) []string {
	var msgs []string
	valid := false
	for _, k := range enquiryKinds {
		if p.Kind == k {
			valid = true
			break
		}
	}
	if !valid {
		msgs = append(msgs, "Enquiry kind must be audit, career or amc")
	}
	if strings.TrimSpace(p.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if strings.TrimSpace(p.Email) == "" && strings.TrimSpace(p.Phone) == "" {
		msgs = append(msgs, "An email address or phone number is required")
	}
	return msgs
}

func notifyEnquiry(mailer *services.Mailer, site services.SiteSettings, p enquiryPayload) {
	if site.CompanyEmail == "" {
		return
	}
	body := fmt.Sprintf(
		"<p>New %s enquiry from <strong>%s</strong></p><p>Email: %s<br>Phone: %s</p><p>%s</p>",
		html.EscapeString(p.Kind),
		html.EscapeString(p.Name),
		html.EscapeString(p.Email),
		html.EscapeString(p.Phone),
		html.EscapeString(p.Message),
	)
	err := mailer.Send(services.EnquiryMail{
		To:      []string{site.CompanyEmail},
		Subject: fmt.Sprintf("New %s enquiry from %s", p.Kind, p.Name),
		HTML:    body,
		ReplyTo: strings.TrimSpace(p.Email),
	})
	if err != nil {
		log.Printf("enquiries: mail notification failed: %v", err)
	}
}
