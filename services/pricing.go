// Package services holds the pricing, wizard and document logic behind the
// Stallion admin API.
package services

import "math"

// Profit holds the outcome of a cost vs selling price comparison.
type Profit struct {
	Amount  float64
	Percent float64
}

// DefaultMargins are the suggested-price margin percentages offered while
// pricing a kit or quotation.
var DefaultMargins = []float64{10, 15, 20, 25}

// ComputeProfit derives profit amount and percentage from a total purchase
// cost and a selling price. A zero cost yields a zero percentage rather than
// a division error; an infinite margin is not a useful number to display.
func ComputeProfit(totalCost, sellingPrice float64) Profit {
	p := Profit{Amount: sellingPrice - totalCost}
	if totalCost > 0 {
		p.Percent = p.Amount / totalCost * 100
	}
	return p
}

// SuggestedPrices returns totalCost marked up by each margin percentage,
// rounded to the nearest whole rupee.
func SuggestedPrices(totalCost float64, margins []float64) []float64 {
	out := make([]float64, len(margins))
	for i, m := range margins {
		out[i] = math.Round(totalCost * (1 + m/100))
	}
	return out
}

// RoundPaise rounds a rupee amount to two decimal places. Totals are rounded
// once at the boundary instead of per line to keep display math stable.
func RoundPaise(v float64) float64 {
	return math.Round(v*100) / 100
}
