package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// HandleSettingsView returns the typed site settings, defaults included.
func HandleSettingsView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, loadSiteSettings(app))
	}
}

// HandleSettingsUpdate upserts the single settings row keyed by "site".
// Partial payloads keep the stored values for omitted fields.
func HandleSettingsUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			CompanyName    *string `json:"company_name"`
			CompanyAddress *string `json:"company_address"`
			CompanyEmail   *string `json:"company_email"`
			CompanyPhone   *string `json:"company_phone"`
			GSTIN          *string `json:"gstin"`
			QuotePrefix    *string `json:"quote_prefix"`
			QuoteTerms     *string `json:"quote_terms"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}

		rec, err := settingsRecord(app)
		if err != nil {
			log.Printf("settings: could not load record: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not load settings")
		}

		setIf := func(field string, v *string) {
			if v != nil {
				rec.Set(field, *v)
			}
		}
		setIf("company_name", payload.CompanyName)
		setIf("company_address", payload.CompanyAddress)
		setIf("company_email", payload.CompanyEmail)
		setIf("company_phone", payload.CompanyPhone)
		setIf("gstin", payload.GSTIN)
		setIf("quote_prefix", payload.QuotePrefix)
		setIf("quote_terms", payload.QuoteTerms)

		if err := app.Save(rec); err != nil {
			log.Printf("settings: could not save: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save settings")
		}
		return e.JSON(http.StatusOK, loadSiteSettings(app))
	}
}

// settingsRecord fetches the settings row, creating it from defaults when
// missing so updates always have a target.
func settingsRecord(app core.App) (*core.Record, error) {
	records, err := app.FindRecordsByFilter("settings", "key = {:key}", "", 1, 0,
		map[string]any{"key": services.SiteSettingsKey})
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records[0], nil
	}

	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return nil, err
	}
	defaults := services.DefaultSiteSettings()
	rec := core.NewRecord(col)
	rec.Set("key", defaults.Key)
	rec.Set("company_name", defaults.CompanyName)
	rec.Set("quote_prefix", defaults.QuotePrefix)
	return rec, nil
}
