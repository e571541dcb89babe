package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// Seed inserts the default settings row and the starter brand list on first
// boot. It is idempotent: existing data is never touched.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSettings(app); err != nil {
		return err
	}
	if err := seedBrands(app); err != nil {
		return err
	}
	return nil
}

func seedSettings(app *pocketbase.PocketBase) error {
	existing, _ := app.FindRecordsByFilter("settings", "key = {:key}", "", 1, 0,
		map[string]any{"key": services.SiteSettingsKey})
	if len(existing) > 0 {
		return nil
	}

	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	defaults := services.DefaultSiteSettings()
	record := core.NewRecord(col)
	record.Set("key", defaults.Key)
	record.Set("company_name", defaults.CompanyName)
	record.Set("quote_prefix", defaults.QuotePrefix)
	record.Set("quote_terms", defaults.QuoteTerms)

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	log.Printf("Seeded default site settings (key=%s)", defaults.Key)
	return nil
}

func seedBrands(app *pocketbase.PocketBase) error {
	existing, _ := app.FindRecordsByFilter("brands", "id != ''", "", 1, 0, nil)
	if len(existing) > 0 {
		return nil
	}

	col, err := app.FindCollectionByNameOrId("brands")
	if err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}

	names := []string{"Hikvision", "CP Plus", "Dahua", "TP-Link", "Seagate", "Western Digital"}
	for _, name := range names {
		record := core.NewRecord(col)
		record.Set("name", name)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed brand %q: %w", name, err)
		}
	}
	log.Printf("Seeded %d brands", len(names))
	return nil
}
