package collections_test

import (
	"testing"

	"stallion/collections"
	"stallion/testhelpers"
)

func TestSeed_CreatesDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify the settings row was created with defaults
	settings, err := app.FindRecordsByFilter("settings", "key = {:key}", "", 1, 0,
		map[string]any{"key": "site"})
	if err != nil || len(settings) == 0 {
		t.Fatalf("settings row not found after Seed(): %v", err)
	}
	if settings[0].GetString("company_name") != "Stallion IT Solutions" {
		t.Errorf("company_name = %q, want %q", settings[0].GetString("company_name"), "Stallion IT Solutions")
	}
	if settings[0].GetString("quote_prefix") == "" {
		t.Error("seeded settings row has an empty quote_prefix")
	}

	// Verify the starter brand list
	brands, err := app.FindRecordsByFilter("brands", "id != ''", "name", 0, 0, nil)
	if err != nil {
		t.Fatalf("query brands error: %v", err)
	}
	if len(brands) != 6 {
		t.Fatalf("expected 6 seeded brands, got %d", len(brands))
	}
	names := make(map[string]bool, len(brands))
	for _, b := range brands {
		names[b.GetString("name")] = true
	}
	for _, want := range []string{"Hikvision", "CP Plus", "Dahua"} {
		if !names[want] {
			t.Errorf("seeded brands missing %q", want)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	settings, _ := app.FindRecordsByFilter("settings", "key = {:key}", "", 0, 0,
		map[string]any{"key": "site"})
	if len(settings) != 1 {
		t.Errorf("expected 1 settings row after idempotent seed, got %d", len(settings))
	}

	brands, _ := app.FindRecordsByFilter("brands", "id != ''", "", 0, 0, nil)
	if len(brands) != 6 {
		t.Errorf("expected 6 brands after idempotent seed, got %d", len(brands))
	}
}

func TestSeed_KeepsEditedSettings(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	settings, _ := app.FindRecordsByFilter("settings", "key = {:key}", "", 1, 0,
		map[string]any{"key": "site"})
	if len(settings) == 0 {
		t.Fatal("settings row not found after Seed()")
	}
	settings[0].Set("company_name", "Renamed Co")
	if err := app.Save(settings[0]); err != nil {
		t.Fatalf("save edited settings: %v", err)
	}

	// Re-seeding must not clobber operator edits
	if err := collections.Seed(app); err != nil {
		t.Fatalf("re-Seed() error: %v", err)
	}
	reloaded, _ := app.FindRecordsByFilter("settings", "key = {:key}", "", 1, 0,
		map[string]any{"key": "site"})
	if reloaded[0].GetString("company_name") != "Renamed Co" {
		t.Errorf("company_name = %q after re-seed, want Renamed Co", reloaded[0].GetString("company_name"))
	}
}

func TestSeed_SkipsWhenBrandsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a brand first (not via Seed)
	testhelpers.CreateTestBrand(t, app, "Existing Brand")

	// Seed should skip the brand list because brand data already exists
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	brands, _ := app.FindRecordsByFilter("brands", "id != ''", "", 0, 0, nil)
	if len(brands) != 1 {
		t.Errorf("expected 1 brand (pre-existing only), got %d", len(brands))
	}
	if brands[0].GetString("name") != "Existing Brand" {
		t.Errorf("expected pre-existing brand, got %q", brands[0].GetString("name"))
	}
}
