package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type vendorPayload struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Phone string `json:"phone"`
	GSTIN string `json:"gstin"`
}

// HandleVendorList lists all vendors ordered by name.
func HandleVendorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("vendors", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("vendors: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list vendors")
		}
		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, vendorJSON(rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"vendors": out})
	}
}

// HandleVendorCreate creates a vendor.
func HandleVendorCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload vendorPayload
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if strings.TrimSpace(payload.Name) == "" {
			return apiValidation(e, []string{"Vendor name is required"})
		}

		col, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			log.Printf("vendors: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}
		rec := core.NewRecord(col)
		applyVendorPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			log.Printf("vendors: could not save: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save vendor")
		}
		return e.JSON(http.StatusCreated, vendorJSON(rec))
	}
}

// HandleVendorUpdate updates an existing vendor.
func HandleVendorUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "vendors", "id")
		if rec == nil {
			return handlerErr
		}
		var payload vendorPayload
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if strings.TrimSpace(payload.Name) == "" {
			return apiValidation(e, []string{"Vendor name is required"})
		}
		applyVendorPayload(rec, payload)
		if err := app.Save(rec); err != nil {
			log.Printf("vendors: could not update %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not update vendor")
		}
		return e.JSON(http.StatusOK, vendorJSON(rec))
	}
}

// HandleVendorDelete deletes a vendor.
func HandleVendorDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "vendors", "id")
		if rec == nil {
			return handlerErr
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("vendors: could not delete %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete vendor")
		}
		return e.JSON(http.StatusOK, map[string]string{"deleted": rec.Id})
	}
}

func applyVendorPayload(rec *core.Record, p vendorPayload) {
	rec.Set("name", strings.TrimSpace(p.Name))
	rec.Set("city", p.City)
	rec.Set("phone", p.Phone)
	rec.Set("gstin", p.GSTIN)
}

func vendorJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":    rec.Id,
		"name":  rec.GetString("name"),
		"city":  rec.GetString("city"),
		"phone": rec.GetString("phone"),
		"gstin": rec.GetString("gstin"),
	}
}
