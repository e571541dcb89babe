package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// HandleQuotationList lists quotations, optionally filtered by status or a
// customer-name search, newest first.
func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()

		filters := []string{"id != ''"}
		params := map[string]any{}
		if status := q.Get("status"); status != "" {
			filters = append(filters, "status = {:status}")
			params["status"] = status
		}
		if search := q.Get("q"); search != "" {
			filters = append(filters, "customer_name ~ {:search}")
			params["search"] = search
		}

		records, err := app.FindRecordsByFilter("quotations",
			strings.Join(filters, " && "), "-created", 0, 0, params)
		if err != nil {
			log.Printf("quotations: list failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not list quotations")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			item, err := quotationJSON(app, rec)
			if err != nil {
				log.Printf("quotations: could not load items for %s: %v", rec.Id, err)
				continue
			}
			out = append(out, item)
		}
		return e.JSON(http.StatusOK, map[string]any{"quotations": out})
	}
}

// HandleQuotationView returns one quotation with items and computed totals.
func HandleQuotationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "quotations", "id")
		if rec == nil {
			return handlerErr
		}
		out, err := quotationJSON(app, rec)
		if err != nil {
			log.Printf("quotations: could not load items for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not load quotation")
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleQuotationStatus patches the quotation lifecycle status.
func HandleQuotationStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "quotations", "id")
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
		for _, s := range services.QuotationStatusOptions {
			if payload.Status == s {
				valid = true
				break
			}
		}
		if !valid {
			return apiValidation(e, []string{"Unknown quotation status"})
		}
		rec.Set("status", payload.Status)
		if err := app.Save(rec); err != nil {
			log.Printf("quotations: could not update status for %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not update quotation")
		}
		return e.JSON(http.StatusOK, map[string]string{"id": rec.Id, "status": payload.Status})
	}
}

// HandleQuotationDelete deletes a quotation; its items cascade.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "quotations", "id")
		if rec == nil {
			return handlerErr
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("quotations: could not delete %s: %v", rec.Id, err)
			return apiError(e, http.StatusInternalServerError, "could not delete quotation")
		}
		return e.JSON(http.StatusOK, map[string]string{"deleted": rec.Id})
	}
}

// HandleQuotationSnapshots lists the append-only pricing snapshots of a
// quotation, oldest first.
func HandleQuotationSnapshots(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, handlerErr := requireRecord(app, e, "quotations", "id")
		if rec == nil {
			return handlerErr
		}
		records, err := app.FindRecordsByFilter("pricing_snapshots",
			"record_type = 'quotation' && record_id = {:id}", "created", 0, 0,
			map[string]any{"id": rec.Id})
		if err != nil {
			log.Printf("quotations: could not load snapshots for %s: %v", rec.Id, err)
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

// HandleQuotationExportPDF streams the customer-facing quotation PDF.
func HandleQuotationExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, handlerErr := buildQuotationExport(app, e)
		if data == nil {
			return handlerErr
		}

		pdfBytes, err := services.GenerateQuotePDF(*data)
		if err != nil {
			log.Printf("quotations: PDF generation failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not generate PDF")
		}

		fileName := services.QuoteFileName(*data, "pdf")
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
	}
}

// HandleQuotationExportExcel streams the internal Excel workbook, cost and
// profit figures included.
func HandleQuotationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, handlerErr := buildQuotationExport(app, e)
		if data == nil {
			return handlerErr
		}

		xlsxBytes, err := services.GenerateQuoteExcel(*data)
		if err != nil {
			log.Printf("quotations: Excel generation failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "could not generate Excel")
		}

		const mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		fileName := services.QuoteFileName(*data, "xlsx")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		return e.Blob(http.StatusOK, mime, xlsxBytes)
	}
}

func buildQuotationExport(app *pocketbase.PocketBase, e *core.RequestEvent) (*services.QuoteExportData, error) {
	rec, handlerErr := requireRecord(app, e, "quotations", "id")
	if rec == nil {
		return nil, handlerErr
	}
	draft, err := draftFromQuotation(app, rec)
	if err != nil {
		log.Printf("quotations: could not build draft for %s: %v", rec.Id, err)
		return nil, apiError(e, http.StatusInternalServerError, "could not load quotation")
	}
	data := services.BuildQuoteExportData(draft,
		rec.GetString("quote_number"),
		rec.GetDateTime("created").Time(),
		GetSiteSettings(e.Request))
	return &data, nil
}
