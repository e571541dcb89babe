package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// lineItemFromRecord maps a kit_items/quotation_items record to a LineItem.
func lineItemFromRecord(rec *core.Record) services.LineItem {
	return services.LineItem{
		ProductType:   services.Category(rec.GetString("product_type")),
		ProductID:     rec.GetString("product"),
		Name:          rec.GetString("name"),
		Qty:           rec.GetFloat("qty"),
		UnitType:      services.UnitType(rec.GetString("unit_type")),
		PurchasePrice: rec.GetFloat("purchase_price"),
		SellingPrice:  rec.GetFloat("selling_price"),
		Free:          rec.GetBool("is_free"),
	}
}

// setLineItemFields writes a LineItem onto an item record.
func setLineItemFields(rec *core.Record, it services.LineItem, sortOrder int) {
	rec.Set("sort_order", sortOrder)
	rec.Set("product_type", string(it.ProductType))
	rec.Set("product", it.ProductID)
	rec.Set("name", it.Name)
	rec.Set("qty", it.Qty)
	rec.Set("unit_type", string(it.UnitType))
	rec.Set("purchase_price", it.PurchasePrice)
	rec.Set("selling_price", it.SellingPrice)
	rec.Set("is_free", it.Free)
}

// loadItems fetches the ordered item records belonging to a parent record.
func loadItems(app core.App, collection, parentField, parentID string) ([]*core.Record, error) {
	return app.FindRecordsByFilter(collection,
		fmt.Sprintf("%s = {:parent}", parentField), "sort_order", 0, 0,
		map[string]any{"parent": parentID})
}

// itemListFromRecords builds an ItemList from ordered item records.
func itemListFromRecords(records []*core.Record) *services.ItemList {
	items := make([]services.LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, lineItemFromRecord(rec))
	}
	return services.NewItemList(items)
}

// replaceItems deletes the existing item rows of a parent and writes the
// draft's items in order, inside the caller's transaction.
func replaceItems(txApp core.App, collection, parentField, parentID string, items []services.LineItem) error {
	existing, err := loadItems(txApp, collection, parentField, parentID)
	if err != nil {
		return fmt.Errorf("load existing items: %w", err)
	}
	for _, rec := range existing {
		if err := txApp.Delete(rec); err != nil {
			return fmt.Errorf("delete item %s: %w", rec.Id, err)
		}
	}

	col, err := txApp.FindCollectionByNameOrId(collection)
	if err != nil {
		return fmt.Errorf("find %s collection: %w", collection, err)
	}
	for i, it := range items {
		rec := core.NewRecord(col)
		rec.Set(parentField, parentID)
		setLineItemFields(rec, it, i+1)
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("save item %d: %w", i+1, err)
		}
	}
	return nil
}

// appendPricingSnapshot writes one append-only audit row for a save action.
// Snapshots are never edited or deleted.
func appendPricingSnapshot(app core.App, recordType, recordID, author string, totalCost, sellingPrice float64) error {
	col, err := app.FindCollectionByNameOrId("pricing_snapshots")
	if err != nil {
		return fmt.Errorf("find pricing_snapshots collection: %w", err)
	}

	profit := services.ComputeProfit(totalCost, sellingPrice)
	rec := core.NewRecord(col)
	rec.Set("record_type", recordType)
	rec.Set("record_id", recordID)
	rec.Set("total_cost", services.RoundPaise(totalCost))
	rec.Set("selling_price", services.RoundPaise(sellingPrice))
	rec.Set("profit_amount", services.RoundPaise(profit.Amount))
	rec.Set("profit_percent", profit.Percent)
	rec.Set("author", author)
	return app.Save(rec)
}

// loadSiteSettings reads the typed settings row, falling back to defaults
// when the row is missing.
func loadSiteSettings(app core.App) services.SiteSettings {
	records, err := app.FindRecordsByFilter("settings", "key = {:key}", "", 1, 0,
		map[string]any{"key": services.SiteSettingsKey})
	if err != nil || len(records) == 0 {
		return services.DefaultSiteSettings()
	}
	rec := records[0]
	return services.SiteSettings{
		Key:            rec.GetString("key"),
		CompanyName:    rec.GetString("company_name"),
		CompanyAddress: rec.GetString("company_address"),
		CompanyEmail:   rec.GetString("company_email"),
		CompanyPhone:   rec.GetString("company_phone"),
		GSTIN:          rec.GetString("gstin"),
		QuotePrefix:    rec.GetString("quote_prefix"),
		QuoteTerms:     rec.GetString("quote_terms"),
	}
}

// nextQuoteNumber derives a quote number from the configured prefix and the
// highest sequence already issued for the current year. Deleting a quotation
// never frees its number for an unrelated later quote.
func nextQuoteNumber(app core.App, prefix string) string {
	if prefix == "" {
		prefix = "Q"
	}
	base := fmt.Sprintf("%s-%s-", prefix, time.Now().Format("2006"))

	// An explicit % keeps the like-match anchored to the prefix.
	records, err := app.FindRecordsByFilter("quotations", "quote_number ~ {:p}", "", 0, 0,
		map[string]any{"p": base + "%"})
	seq := 0
	if err == nil {
		for _, rec := range records {
			n, convErr := strconv.Atoi(strings.TrimPrefix(rec.GetString("quote_number"), base))
			if convErr == nil && n > seq {
				seq = n
			}
		}
	}
	return fmt.Sprintf("%s%04d", base, seq+1)
}

// draftFromQuotation rebuilds a wizard draft from a stored quotation so an
// existing record can be edited through the wizard.
func draftFromQuotation(app core.App, rec *core.Record) (*services.Draft, error) {
	itemRecs, err := loadItems(app, "quotation_items", "quotation", rec.Id)
	if err != nil {
		return nil, fmt.Errorf("load quotation items: %w", err)
	}
	return &services.Draft{
		Kind:         "quotation",
		Name:         rec.GetString("customer_name"),
		Phone:        rec.GetString("customer_phone"),
		Email:        rec.GetString("customer_email"),
		Address:      rec.GetString("installation_address"),
		Notes:        rec.GetString("notes"),
		SystemType:   services.SystemType(rec.GetString("system_type")),
		ChannelCount: int(rec.GetFloat("channel_count")),
		SellingPrice: rec.GetFloat("selling_price"),
		Status:       rec.GetString("status"),
		Items:        *itemListFromRecords(itemRecs),
	}, nil
}

// draftFromKit rebuilds a wizard draft from a stored kit.
func draftFromKit(app core.App, rec *core.Record) (*services.Draft, error) {
	itemRecs, err := loadItems(app, "kit_items", "kit", rec.Id)
	if err != nil {
		return nil, fmt.Errorf("load kit items: %w", err)
	}
	var highlights []string
	if err := rec.UnmarshalJSONField("highlights", &highlights); err != nil {
		highlights = nil
	}
	return &services.Draft{
		Kind:         "kit",
		Name:         rec.GetString("name"),
		Description:  rec.GetString("description"),
		Highlights:   highlights,
		SystemType:   services.SystemType(rec.GetString("system_type")),
		ChannelCount: int(rec.GetFloat("channel_count")),
		SellingPrice: rec.GetFloat("selling_price"),
		Status:       rec.GetString("status"),
		Items:        *itemListFromRecords(itemRecs),
	}, nil
}

// quotationJSON is the API shape of a quotation with its items and computed
// totals. Totals are derived on demand, never stored.
func quotationJSON(app core.App, rec *core.Record) (map[string]any, error) {
	itemRecs, err := loadItems(app, "quotation_items", "quotation", rec.Id)
	if err != nil {
		return nil, err
	}
	list := itemListFromRecords(itemRecs)
	totalCost := services.RoundPaise(list.TotalCost())
	profit := services.ComputeProfit(totalCost, rec.GetFloat("selling_price"))

	return map[string]any{
		"id":                   rec.Id,
		"quote_number":         rec.GetString("quote_number"),
		"customer_name":        rec.GetString("customer_name"),
		"customer_phone":       rec.GetString("customer_phone"),
		"customer_email":       rec.GetString("customer_email"),
		"installation_address": rec.GetString("installation_address"),
		"notes":                rec.GetString("notes"),
		"system_type":          rec.GetString("system_type"),
		"channel_count":        int(rec.GetFloat("channel_count")),
		"selling_price":        rec.GetFloat("selling_price"),
		"status":               rec.GetString("status"),
		"items":                list.Items(),
		"total_cost":           totalCost,
		"profit_amount":        services.RoundPaise(profit.Amount),
		"profit_percent":       profit.Percent,
		"created":              rec.GetDateTime("created").String(),
	}, nil
}

// kitJSON is the API shape of a kit with its items and computed totals.
func kitJSON(app core.App, rec *core.Record) (map[string]any, error) {
	itemRecs, err := loadItems(app, "kit_items", "kit", rec.Id)
	if err != nil {
		return nil, err
	}
	list := itemListFromRecords(itemRecs)
	totalCost := services.RoundPaise(list.TotalCost())
	profit := services.ComputeProfit(totalCost, rec.GetFloat("selling_price"))

	var highlights []string
	if err := rec.UnmarshalJSONField("highlights", &highlights); err != nil {
		highlights = nil
	}

	return map[string]any{
		"id":             rec.Id,
		"name":           rec.GetString("name"),
		"system_type":    rec.GetString("system_type"),
		"channel_count":  int(rec.GetFloat("channel_count")),
		"selling_price":  rec.GetFloat("selling_price"),
		"description":    rec.GetString("description"),
		"highlights":     highlights,
		"status":         rec.GetString("status"),
		"images":         rec.GetStringSlice("images"),
		"items":          list.Items(),
		"total_cost":     totalCost,
		"profit_amount":  services.RoundPaise(profit.Amount),
		"profit_percent": profit.Percent,
	}, nil
}

// requireRecord fetches a record by path value ID or writes a 404.
func requireRecord(app *pocketbase.PocketBase, e *core.RequestEvent, collection, pathKey string) (*core.Record, error) {
	id := e.Request.PathValue(pathKey)
	rec, err := app.FindRecordById(collection, id)
	if err != nil {
		return nil, apiError(e, http.StatusNotFound, fmt.Sprintf("%s not found", collection))
	}
	return rec, nil
}
