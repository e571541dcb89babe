package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stallion/services"
)

// HandleSuggestedPrices computes margin-based selling price suggestions and
// the profit preview for a given cost/price pair.
func HandleSuggestedPrices() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload struct {
			TotalCost    float64 `json:"total_cost"`
			SellingPrice float64 `json:"selling_price"`
		}
		if err := decodeJSON(e, &payload); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if payload.TotalCost < 0 {
			return apiValidation(e, []string{"Total cost cannot be negative"})
		}

		profit := services.ComputeProfit(payload.TotalCost, payload.SellingPrice)
		return e.JSON(http.StatusOK, map[string]any{
			"total_cost":       services.RoundPaise(payload.TotalCost),
			"suggested_prices": services.SuggestedPrices(payload.TotalCost, services.DefaultMargins),
			"profit_amount":    services.RoundPaise(profit.Amount),
			"profit_percent":   profit.Percent,
		})
	}
}
