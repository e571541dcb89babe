package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// wizardStateJSON is the session state returned after every wizard call.
func wizardStateJSON(sess *services.Session) map[string]any {
	w := sess.Wizard
	d := w.Draft()

	visible := w.VisibleSteps()
	steps := make([]map[string]any, 0, len(visible))
	for _, s := range visible {
		steps = append(steps, map[string]any{
			"key":         s.Key,
			"title":       s.Title,
			"description": s.Description,
			"category":    string(s.Category),
		})
	}

	totalCost := services.RoundPaise(d.Items.TotalCost())
	profit := services.ComputeProfit(totalCost, d.SellingPrice)

	return map[string]any{
		"session_id":   sess.ID,
		"kind":         sess.Kind,
		"record_id":    sess.RecordID,
		"current_step": w.Current().Key,
		"steps":        steps,
		"draft": map[string]any{
			"name":          d.Name,
			"phone":         d.Phone,
			"email":         d.Email,
			"address":       d.Address,
			"notes":         d.Notes,
			"description":   d.Description,
			"highlights":    d.Highlights,
			"system_type":   string(d.SystemType),
			"channel_count": d.ChannelCount,
			"selling_price": d.SellingPrice,
			"status":        d.Status,
			"items":         d.Items.Items(),
		},
		"totals": map[string]any{
			"total_cost":       totalCost,
			"selling_price":    d.SellingPrice,
			"profit_amount":    services.RoundPaise(profit.Amount),
			"profit_percent":   profit.Percent,
			"suggested_prices": services.SuggestedPrices(totalCost, services.DefaultMargins),
		},
	}
}

// HandleWizardStart opens a wizard session. Body: {"kind": "kit"|"quotation",
// "record_id": "..."} — record_id switches the session to edit mode, seeding
// the draft from the stored record.
func HandleWizardStart(app *pocketbase.PocketBase, store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			Kind     string `json:"kind"`
			RecordID string `json:"record_id"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if payload.Kind != "kit" && payload.Kind != "quotation" {
			return apiValidation(e, []string{"kind must be kit or quotation"})
		}

		draft := &services.Draft{Status: "draft"}
		if payload.RecordID != "" {
			var (
				d   *services.Draft
				err error
			)
			if payload.Kind == "quotation" {
				rec, findErr := app.FindRecordById("quotations", payload.RecordID)
				if findErr != nil {
					return apiError(e, http.StatusNotFound, "quotation not found")
				}
				d, err = draftFromQuotation(app, rec)
			} else {
				rec, findErr := app.FindRecordById("kits", payload.RecordID)
				if findErr != nil {
					return apiError(e, http.StatusNotFound, "kit not found")
				}
				d, err = draftFromKit(app, rec)
			}
			if err != nil {
				log.Printf("wizard: could not seed draft from %s %s: %v", payload.Kind, payload.RecordID, err)
				return apiError(e, http.StatusInternalServerError, "could not load record")
			}
			draft = d
		}

		sess := store.Start(payload.Kind, payload.RecordID, draft)
		return e.JSON(http.StatusCreated, wizardStateJSON(sess))
	}
}

// HandleWizardState returns the current session state.
func HandleWizardState(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardAdvance validates the current step and moves forward.
// Validation problems come back as a message list with the state unchanged.
func HandleWizardAdvance(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		if msgs := sess.Wizard.Advance(); len(msgs) > 0 {
			return apiValidation(e, msgs)
		}
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardRetreat moves back one visible step; always allowed.
func HandleWizardRetreat(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		sess.Wizard.Retreat()
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardJump moves to an already-reached step. Rejected jumps return
// the unchanged state; the UI disables those controls rather than erroring.
func HandleWizardJump(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		var payload struct {
			Step string `json:"step"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		sess.Wizard.JumpTo(payload.Step)
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardDraft shallow-merges a draft patch; conditional steps are
// recomputed from the updated draft.
func HandleWizardDraft(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		var patch services.DraftPatch
		if err := decodeJSON(e, &patch); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		sess.Wizard.UpdateDraft(patch)
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardAddItem appends a line item to the draft. Free promotional
// items replace any existing free item of the same product type.
func HandleWizardAddItem(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		var item services.LineItem
		if err := decodeJSON(e, &item); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if !item.ProductType.Valid() {
			return apiValidation(e, []string{"Unknown product category"})
		}
		if item.Qty <= 0 {
			return apiValidation(e, []string{"Quantity must be positive"})
		}
		sess.Wizard.Draft().Items.Add(item)
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardUpdateItem shallow-merges a patch into the item at the given
// index. Clearing the free flag removes the promotional item entirely.
func HandleWizardUpdateItem(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		index, handlerErr := itemIndex(e, sess)
		if index < 0 {
			return handlerErr
		}
		var patch services.LineItemPatch
		if err := decodeJSON(e, &patch); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid JSON body")
		}
		if patch.Qty != nil && *patch.Qty <= 0 {
			return apiValidation(e, []string{"Quantity must be positive"})
		}
		sess.Wizard.Draft().Items.Update(index, patch)
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardRemoveItem removes the item at the given index.
func HandleWizardRemoveItem(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		index, handlerErr := itemIndex(e, sess)
		if index < 0 {
			return handlerErr
		}
		sess.Wizard.Draft().Items.Remove(index)
		return e.JSON(http.StatusOK, wizardStateJSON(sess))
	}
}

// HandleWizardReview runs the full-record checklist without submitting.
func HandleWizardReview(store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		msgs := sess.Wizard.Review()
		return e.JSON(http.StatusOK, map[string]any{
			"ok":     len(msgs) == 0,
			"errors": msgs,
		})
	}
}

// HandleWizardSubmit persists the draft as one atomic create/update, appends
// a pricing snapshot, and ends the session. Submission is blocked while the
// review checklist reports problems.
func HandleWizardSubmit(app *pocketbase.PocketBase, store *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, ok := store.Get(e.Request.PathValue("sessionId"))
		if !ok {
			return apiError(e, http.StatusNotFound, "wizard session not found")
		}
		if msgs := sess.Wizard.Review(); len(msgs) > 0 {
			return apiValidation(e, msgs)
		}

		var recordID string
		var err error
		if sess.Kind == "quotation" {
			recordID, err = submitQuotation(app, sess)
		} else {
			recordID, err = submitKit(app, sess)
		}
		if err != nil {
			log.Printf("wizard: submit %s failed: %v", sess.Kind, err)
			return apiError(e, http.StatusInternalServerError, "could not save "+sess.Kind)
		}

		store.End(sess.ID)
		return e.JSON(http.StatusOK, map[string]string{"id": recordID, "kind": sess.Kind})
	}
}

func submitQuotation(app *pocketbase.PocketBase, sess *services.Session) (string, error) {
	d := sess.Wizard.Draft()

	var recordID string
	err := app.RunInTransaction(func(txApp core.App) error {
		var rec *core.Record
		if sess.RecordID != "" {
			existing, err := txApp.FindRecordById("quotations", sess.RecordID)
			if err != nil {
				return err
			}
			rec = existing
		} else {
			col, err := txApp.FindCollectionByNameOrId("quotations")
			if err != nil {
				return err
			}
			rec = core.NewRecord(col)
			rec.Set("quote_number", nextQuoteNumber(txApp, loadSiteSettings(txApp).QuotePrefix))
		}

		rec.Set("customer_name", d.Name)
		rec.Set("customer_phone", d.Phone)
		rec.Set("customer_email", d.Email)
		rec.Set("installation_address", d.Address)
		rec.Set("notes", d.Notes)
		rec.Set("system_type", string(d.SystemType))
		rec.Set("channel_count", d.ChannelCount)
		rec.Set("selling_price", d.SellingPrice)
		if d.Status == "" {
			d.Status = "draft"
		}
		rec.Set("status", d.Status)
		if err := txApp.Save(rec); err != nil {
			return err
		}
		recordID = rec.Id

		if err := replaceItems(txApp, "quotation_items", "quotation", rec.Id, d.Items.Items()); err != nil {
			return err
		}
		return appendPricingSnapshot(txApp, "quotation", rec.Id, "", d.Items.TotalCost(), d.SellingPrice)
	})
	return recordID, err
}

func submitKit(app *pocketbase.PocketBase, sess *services.Session) (string, error) {
	d := sess.Wizard.Draft()

	var recordID string
	err := app.RunInTransaction(func(txApp core.App) error {
		var rec *core.Record
		if sess.RecordID != "" {
			existing, err := txApp.FindRecordById("kits", sess.RecordID)
			if err != nil {
				return err
			}
			rec = existing
		} else {
			col, err := txApp.FindCollectionByNameOrId("kits")
			if err != nil {
				return err
			}
			rec = core.NewRecord(col)
		}

		rec.Set("name", d.Name)
		rec.Set("system_type", string(d.SystemType))
		rec.Set("channel_count", d.ChannelCount)
		rec.Set("selling_price", d.SellingPrice)
		rec.Set("description", d.Description)
		rec.Set("highlights", d.Highlights)
		if d.Status == "" {
			d.Status = "draft"
		}
		rec.Set("status", d.Status)
		if err := txApp.Save(rec); err != nil {
			return err
		}
		recordID = rec.Id

		if err := replaceItems(txApp, "kit_items", "kit", rec.Id, d.Items.Items()); err != nil {
			return err
		}
		return appendPricingSnapshot(txApp, "kit", rec.Id, "", d.Items.TotalCost(), d.SellingPrice)
	})
	return recordID, err
}

// itemIndex parses the item index path value and bounds-checks it against
// the session draft, so ItemList's in-range contract holds.
func itemIndex(e *core.RequestEvent, sess *services.Session) (int, error) {
	raw := e.Request.PathValue("index")
	index := -1
	for _, r := range raw {
		if r < '0' || r > '9' {
			index = -1
			break
		}
		if index < 0 {
			index = 0
		}
		index = index*10 + int(r-'0')
	}
	if index < 0 || index >= sess.Wizard.Draft().Items.Len() {
		return -1, apiError(e, http.StatusBadRequest, "item index out of range")
	}
	return index, nil
}
