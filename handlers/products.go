package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// productPayload is the JSON body for product create/update.
type productPayload struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Vendor        string          `json:"vendor"`
	ModelNo       string          `json:"model_no"`
	PurchasePrice float64         `json:"purchase_price"`
	SellingPrice  float64         `json:"selling_price"`
	UnitType      string          `json:"unit_type"`
	Specs         json.RawMessage `json:"specs"`
	Description   string          `json:"description"`
}

// HandleProductList returns a handler listing products with optional
// category/brand equality filters, a name "contains" search, a price range,
// ordering and a limit.
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()

		filters := []string{"id != ''"}
		params := map[string]any{}

		if category := q.Get("category"); category != "" {
			filters = append(filters, "category = {:category}")
			params["category"] = category
		}
		if brand := q.Get("brand"); brand != "" {
			filters = append(filters, "brand = {:brand}")
			params["brand"] = brand
		}
		if search := q.Get("q"); search != "" {
			filters = append(filters, "name ~ {:search}")
			params["search"] = search
		}
		if min := q.Get("price_min"); min != "" {
			if v, err := strconv.ParseFloat(min, 64); err == nil {
				filters = append(filters, "selling_price >= {:priceMin}")
				params["priceMin"] = v
			}
		}
		if max := q.Get("price_max"); max != "" {
			if v, err := strconv.ParseFloat(max, 64); err == nil {
				filters = append(filters, "selling_price <= {:priceMax}")
				params["priceMax"] = v
			}
		}

		sort := q.Get("sort")
		if sort == "" {
			sort = "-created"
		}
		limit := 0
		if l := q.Get("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				limit = v
			}
		}

		records, err := app.FindRecordsByFilter("products",
			strings.Join(filters, " && "), sort, limit, 0, params)
		if err != nil {
			log.Printf("products: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list products")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, productJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"products": out})
	}
}

// HandleProductView returns a single product.
func HandleProductView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := requireRecord(app, e, "products", "id")
		if rec == nil {
			return err
		}
		return e.JSON(http.StatusOK, productJSON(rec))
	}
}

// HandleProductCreate creates a product after validating its category-typed
// specs variant.
func HandleProductCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload productPayload
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}

		if msgs := validateProductPayload(payload); len(msgs) > 0 {
			return apiValidation(e, msgs)
		}

		specs, err := services.ParseSpecs(services.Category(payload.Category), payload.Specs)
		if err != nil {
			return apiValidation(e, []string{err.Error()})
		}

		col, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			log.Printf("products: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}

		rec := core.NewRecord(col)
		applyProductPayload(rec, payload, specs)
		if err := app.Save(rec); err != nil {
			log.Printf("products: could not save: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save product")
		}
		return e.JSON(http.StatusCreated, productJSON(rec))
	}
}

// HandleProductUpdate updates an existing product.
func HandleProductUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "products", "id")
		if rec == nil {
			return handlerErr
		}

		var payload productPayload
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if msgs := validateProductPayload(payload); len(msgs) > 0 {
			return apiValidation(e, msgs)
		}
		specs, err := services.ParseSpecs(services.Category(payload.Category), payload.Specs)
		if err != nil {
			return apiValidation(e, []string{err.Error()})
		}

		applyProductPayload(rec, payload, specs)
		if err := app.Save(rec); err != nil {
			log.Printf("products: could not update %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not update product")
		}
		return e.JSON(http.StatusOK, productJSON(rec))
	}
}

// HandleProductDelete deletes a product.
func HandleProductDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "products", "id")
		if rec == nil {
			return handlerErr
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("products: could not delete %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete product")
		}
		return e.JSON(http.StatusOK, map[string]string{"deleted": rec.Id})
	}
}

func validateProductPayload(p productPayload) []string {
	var msgs []string
	if strings.TrimSpace(p.Name) == "" {
		msgs = append(msgs, "Product name is required")
	}
	if !services.Category(p.Category).Valid() {
		msgs = append(msgs, "Unknown product category")
	}
	if p.PurchasePrice < 0 || p.SellingPrice < 0 {
		msgs = append(msgs, "Prices cannot be negative")
	}
	if p.UnitType != string(services.UnitPiece) && p.UnitType != string(services.UnitMeter) {
		msgs = append(msgs, "Unit type must be piece or meter")
	}
	return msgs
}

func applyProductPayload(rec *core.Record, p productPayload, specs services.ProductSpecs) {
	rec.Set("name", strings.TrimSpace(p.Name))
	rec.Set("category", p.Category)
	rec.Set("brand", p.Brand)
	rec.Set("vendor", p.Vendor)
	rec.Set("model_no", p.ModelNo)
	rec.Set("purchase_price", p.PurchasePrice)
	rec.Set("selling_price", p.SellingPrice)
	rec.Set("unit_type", p.UnitType)
	rec.Set("specs", specs)
	rec.Set("description", p.Description)
}

func productJSON(rec *core.Record) map[string]any {
	category := services.Category(rec.GetString("category"))
	var specs services.ProductSpecs
	if err := rec.UnmarshalJSONField("specs", &specs); err != nil {
		specs = services.ProductSpecs{Category: category}
	}
	return map[string]any{
		"id":             rec.Id,
		"name":           rec.GetString("name"),
		"category":       string(category),
		"category_label": category.Label(),
		"category_icon":  category.Icon(),
		"brand":          rec.GetString("brand"),
		"vendor":         rec.GetString("vendor"),
		"model_no":       rec.GetString("model_no"),
		"purchase_price": rec.GetFloat("purchase_price"),
		"selling_price":  rec.GetFloat("selling_price"),
		"unit_type":      rec.GetString("unit_type"),
		"specs":          specs,
		"description":    rec.GetString("description"),
		"image":          rec.GetString("image"),
	}
}
