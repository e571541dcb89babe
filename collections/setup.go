package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// Setup programmatically creates/ensures every collection the Stallion
// admin API uses: catalog entities, kits, quotations, pricing snapshots,
// settings, alerts and enquiries.
func Setup(app *pocketbase.PocketBase) {
	brands := ensureCollection(app, "brands", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.FileField{
			Name:      "logo",
			MaxSize:   services.MaxImageBytes,
			MaxSelect: 1,
			MimeTypes: imageMimeTypes(),
		})
	})

	vendors := ensureCollection(app, "vendors", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "gstin", Required: false})
	})

	products := ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    categoryValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "brand",
			CollectionId: brands.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "vendor",
			CollectionId: vendors.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "model_no", Required: false})
		c.Fields.Add(&core.NumberField{Name: "purchase_price", Required: true})
		c.Fields.Add(&core.NumberField{Name: "selling_price", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "unit_type",
			Required:  true,
			Values:    []string{string(services.UnitPiece), string(services.UnitMeter)},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "specs"})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "image",
			MaxSize:   services.MaxImageBytes,
			MaxSelect: 1,
			MimeTypes: imageMimeTypes(),
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	kits := ensureCollection(app, "kits", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "system_type",
			Required:  true,
			Values:    systemTypeValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "channel_count", Required: true})
		c.Fields.Add(&core.NumberField{Name: "selling_price", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.JSONField{Name: "highlights"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.KitStatusOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.FileField{
			Name:      "images",
			MaxSize:   services.MaxImageBytes,
			MaxSelect: 6,
			MimeTypes: imageMimeTypes(),
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "kit_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "kit",
			Required:      true,
			CollectionId:  kits.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		addLineItemFields(c, products.Id)
	})

	quotations := ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "installation_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "system_type",
			Required:  true,
			Values:    systemTypeValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "channel_count", Required: true})
		c.Fields.Add(&core.NumberField{Name: "selling_price", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.QuotationStatusOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quotation_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		addLineItemFields(c, products.Id)
	})

	// Pricing snapshots are append-only: one row per save, never edited or
	// deleted. They form the margin audit trail.
	ensureCollection(app, "pricing_snapshots", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "record_type",
			Required:  true,
			Values:    []string{"kit", "quotation"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "record_id", Required: true})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "selling_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_percent", Required: false})
		c.Fields.Add(&core.TextField{Name: "author", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "company_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "company_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "company_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "company_phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "gstin", Required: false})
		c.Fields.Add(&core.TextField{Name: "quote_prefix", Required: false})
		c.Fields.Add(&core.TextField{Name: "quote_terms", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "logo",
			MaxSize:   services.MaxImageBytes,
			MaxSelect: 1,
			MimeTypes: imageMimeTypes(),
		})
		c.Fields.Add(&core.FileField{
			Name:      "favicon",
			MaxSize:   services.MaxImageBytes,
			MaxSelect: 1,
			MimeTypes: imageMimeTypes(),
		})
	})

	ensureCollection(app, "alerts", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "message", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "level",
			Required:  true,
			Values:    []string{"info", "warning", "promo"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "enquiries", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    []string{"audit", "career", "amc"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "message", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// addLineItemFields adds the shared line-item fields used by kit_items and
// quotation_items.
func addLineItemFields(c *core.Collection, productsCollectionID string) {
	c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	c.Fields.Add(&core.SelectField{
		Name:      "product_type",
		Required:  true,
		Values:    categoryValues(),
		MaxSelect: 1,
	})
	c.Fields.Add(&core.RelationField{
		Name:         "product",
		CollectionId: productsCollectionID,
		MaxSelect:    1,
	})
	c.Fields.Add(&core.TextField{Name: "name", Required: true})
	c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
	c.Fields.Add(&core.SelectField{
		Name:      "unit_type",
		Required:  true,
		Values:    []string{string(services.UnitPiece), string(services.UnitMeter)},
		MaxSelect: 1,
	})
	c.Fields.Add(&core.NumberField{Name: "purchase_price", Required: false})
	c.Fields.Add(&core.NumberField{Name: "selling_price", Required: false})
	c.Fields.Add(&core.BoolField{Name: "is_free"})
}

func categoryValues() []string {
	cats := services.AllCategories()
	values := make([]string, len(cats))
	for i, c := range cats {
		values[i] = string(c)
	}
	return values
}

func systemTypeValues() []string {
	types := services.SystemTypes()
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return values
}

func imageMimeTypes() []string {
	return []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
