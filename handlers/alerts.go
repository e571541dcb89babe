package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var alertLevels = []string{"info", "warning", "promo"}

// HandleAlertList lists alerts, newest first. ?active=1 keeps only the
// banners currently shown to visitors.
func HandleAlertList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		if e.Request.URL.Query().Get("active") == "1" {
			filter = "active = true"
		}
		records, err := app.FindRecordsByFilter("alerts", filter, "-created", 0, 0, nil)
		if err != nil {
			log.Printf("alerts: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list alerts")
		}
		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, alertJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"alerts": out})
	}
}

// HandleAlertCreate creates an alert banner.
func HandleAlertCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			Message string `json:"message"`
			Level   string `json:"level"`
			Active  bool   `json:"active"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if strings.TrimSpace(payload.Message) == "" {
			return apiValidation(e, []string{"Alert message is required"})
		}
		if !validAlertLevel(payload.Level) {
			return apiValidation(e, []string{"Alert level must be info, warning or promo"})
		}

		col, err := app.FindCollectionByNameOrId("alerts")
		if err != nil {
			log.Printf("alerts: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}
		rec := core.NewRecord(col)
		rec.Set("message", strings.TrimSpace(payload.Message))
		rec.Set("level", payload.Level)
		rec.Set("active", payload.Active)
		if err := app.Save(rec); err != nil {
			log.Printf("alerts: could not save: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save alert")
		}
		return e.JSON(http.StatusCreated, alertJSON(rec))
	}
}

// HandleAlertToggle flips the active flag of an alert.
func HandleAlertToggle(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "alerts", "id")
		if rec == nil {
			return handlerErr
		}
		rec.Set("active", !rec.GetBool("active"))
		if err := app.Save(rec); err != nil {
			log.Printf("alerts: could not toggle %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not update alert")
		}
		return e.JSON(http.StatusOK, alertJSON(rec))
	}
}

// HandleAlertDelete deletes an alert.
func HandleAlertDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "alerts", "id")
		if rec == nil {
			return handlerErr
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("alerts: could not delete %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete alert")
		}
		return e.JSON(http.StatusOK, map[string]string{"deleted": rec.Id})
	}
}

func validAlertLevel(level string) bool {
	for _, l := range alertLevels {
		if level == l {
			return true
		}
	}
	return false
}

func alertJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":      rec.Id,
		"message": rec.GetString("message"),
		"level":   rec.GetString("level"),
		"active":  rec.GetBool("active"),
		"created": rec.GetDateTime("created").String(),
	}
}
