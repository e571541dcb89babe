// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestBrand creates a brand record with the given name and returns it.
func CreateTestBrand(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("brands")
	if err != nil {
		t.Fatalf("failed to find brands collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test brand: %v", err)
	}

	return record
}

// CreateTestVendor creates a vendor record with the given name and returns it.
func CreateTestVendor(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		t.Fatalf("failed to find vendors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("city", "Mumbai")
	record.Set("gstin", "27AADCB2230M1ZV")
	record.Set("phone", "9876543210")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test vendor: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record in the given category.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name, category string, purchasePrice, sellingPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("category", category)
	record.Set("purchase_price", purchasePrice)
	record.Set("selling_price", sellingPrice)
	record.Set("unit_type", "piece")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestQuotation creates a quotation record and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, customerName string, sellingPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_number", "SIT-Q-2026-0001")
	record.Set("customer_name", customerName)
	record.Set("installation_address", "42 MG Road, Pune")
	record.Set("system_type", "analog")
	record.Set("channel_count", 4)
	record.Set("selling_price", sellingPrice)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// CreateTestQuotationItem creates a line item row linked to a quotation.
func CreateTestQuotationItem(t *testing.T, app *pocketbase.PocketBase, quotationID, productType, name string, qty, purchasePrice, sellingPrice float64, free bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		t.Fatalf("failed to find quotation_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("sort_order", 1)
	record.Set("product_type", productType)
	record.Set("name", name)
	record.Set("qty", qty)
	record.Set("unit_type", "piece")
	record.Set("purchase_price", purchasePrice)
	record.Set("selling_price", sellingPrice)
	record.Set("is_free", free)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation item: %v", err)
	}

	return record
}

// CreateTestKit creates a kit record and returns it.
func CreateTestKit(t *testing.T, app *pocketbase.PocketBase, name, systemType string, channelCount int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("kits")
	if err != nil {
		t.Fatalf("failed to find kits collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("system_type", systemType)
	record.Set("channel_count", channelCount)
	record.Set("selling_price", 25000.0)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test kit: %v", err)
	}

	return record
}

// CreateTestKitItem creates a line item row linked to a kit.
func CreateTestKitItem(t *testing.T, app *pocketbase.PocketBase, kitID, productType, name string, qty, purchasePrice, sellingPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("kit_items")
	if err != nil {
		t.Fatalf("failed to find kit_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("kit", kitID)
	record.Set("sort_order", 1)
	record.Set("product_type", productType)
	record.Set("name", name)
	record.Set("qty", qty)
	record.Set("unit_type", "piece")
	record.Set("purchase_price", purchasePrice)
	record.Set("selling_price", sellingPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test kit item: %v", err)
	}

	return record
}
