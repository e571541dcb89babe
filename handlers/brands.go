package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBrandList lists all brands ordered by name.
func HandleBrandList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("brands", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("brands: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list brands")
		}
		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, map[string]any{
				"id":   rec.Id,
				"name": rec.GetString("name"),
				"logo": rec.GetString("logo"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"brands": out})
	}
}

// HandleBrandCreate creates a brand.
func HandleBrandCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			Name string `json:"name"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return apiValidation(e, []string{"Brand name is required"})
		}

		existing, _ := app.FindRecordsByFilter("brands", "name = {:name}", "", 1, 0,
			map[string]any{"name": name})
		if len(existing) > 0 {
			return apiValidation(e, []string{"A brand with this name already exists"})
		}

		col, err := app.FindCollectionByNameOrId("brands")
		if err != nil {
			log.Printf("brands: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "internal error")
		}
		rec := core.NewRecord(col)
		rec.Set("name", name)
		if err := app.Save(rec); err != nil {
			log.Printf("brands: could not save: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not save brand")
		}
		return e.JSON(http.StatusCreated, map[string]any{"id": rec.Id, "name": name})
	}
}

// HandleBrandDelete deletes a brand.
func HandleBrandDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "brands", "id")
		if rec == nil {
			return handlerErr
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("brands: could not delete %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete brand")
		}
		return e.JSON(http.StatusOK, map[string]string{"deleted": rec.Id})
	}
}
