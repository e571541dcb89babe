package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// HandleKitList lists kits, optionally filtered by status or system type.
func HandleKitList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()

		filters := []string{"id != ''"}
		params := map[string]any{}
		if status := q.Get("status"); status != "" {
			filters = append(filters, "status = {:status}")
			params["status"] = status
		}
		if systemType := q.Get("system_type"); systemType != "" {
			filters = append(filters, "system_type = {:systemType}")
			params["systemType"] = systemType
		}

		records, err := app.FindRecordsByFilter("kits",
			strings.Join(filters, " && "), "-created", 0, 0, params)
		if err != nil {
			log.Printf("kits: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list kits")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			item, err := kitJSON(app, rec)
			if err != nil {
				log.Printf("kits: could not load items for %s: %v", rec.Id, err)
				continue
			}
			out = append(out, item)
		}
		return e.JSON(http.StatusOK, map[string]any{"kits": out})
	}
}

// HandleKitView returns one kit with items and computed totals.
func HandleKitView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "kits", "id")
		if rec == nil {
			return handlerErr
		}
		out, err := kitJSON(app, rec)
		if err != nil {
			log.Printf("kits: could not load items for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not load kit")
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleKitStatus patches the kit lifecycle status.
func HandleKitStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "kits", "id")
		if rec == nil {
			return handlerErr
		}
		var payload struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		valid := false
		for _, s := range services.KitStatusOptions {
			if payload.Status == s {
				valid = true
				break
			}
		}
		if !valid {
			return apiValidation(e, []string{"Unknown kit status"})
		}
		rec.Set("status", payload.Status)
		if err := app.Save(rec); err != nil {
			log.Printf("kits: could not update status for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not update kit")
		}
		return e.JSON(http.StatusOK, map[string]string{"id": rec.Id, "status": payload.Status})
	}
}

// HandleKitDelete deletes a kit; its items cascade.
func HandleKitDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "kits", "id")
		if rec == nil {
			return handlerErr
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("kits: could not delete %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete kit")
		}
		return e.JSON(http.StatusOK, map[string]string{"deleted": rec.Id})
	}
}

// HandleKitSnapshots lists the append-only pricing snapshots of a kit.
func HandleKitSnapshots(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "kits", "id")
		if rec == nil {
			return handlerErr
		}
		records, err := app.FindRecordsByFilter("pricing_snapshots",
			"record_type = 'kit' && record_id = {:id}", "created", 0, 0,
			map[string]any{"id": rec.Id})
		if err != nil {
			log.Printf("kits: could not load snapshots for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not load snapshots")
		}
		out := make([]map[string]any, 0, len(records))
		for _, s := range records {
			out = append(out, map[string]any{
				"total_cost":     s.GetFloat("total_cost"),
				"selling_price":  s.GetFloat("selling_price"),
				"profit_amount":  s.GetFloat("profit_amount"),
				"profit_percent": s.GetFloat("profit_percent"),
				"author":         s.GetString("author"),
				"created":        s.GetDateTime("created").String(),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"snapshots": out})
	}
}
