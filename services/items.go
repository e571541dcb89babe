package services

import "fmt"

// UnitType distinguishes items counted in discrete pieces from items
// measured by length (cable rolls sold per metre).
type UnitType string

const (
	UnitPiece UnitType = "piece"
	UnitMeter UnitType = "meter"
)

// LineItem is one product/quantity/price entry inside a kit or quotation.
// Free promotional items keep their purchase price (it still counts against
// margin) but are always sold at zero.
type LineItem struct {
	ProductType   Category `json:"product_type"`
	ProductID     string   `json:"product_id,omitempty"`
	Name          string   `json:"name"`
	Qty           float64  `json:"qty"`
	UnitType      UnitType `json:"unit_type"`
	PurchasePrice float64  `json:"purchase_price"`
	SellingPrice  float64  `json:"selling_price"`
	Free          bool     `json:"free"`
}

// EffectiveSellingPrice returns the per-unit customer-facing price, forcing
// free promotional items to zero regardless of the stored selling price.
func (it LineItem) EffectiveSellingPrice() float64 {
	if it.Free {
		return 0
	}
	return it.SellingPrice
}

// LineItemPatch carries a partial update for a line item. Nil fields are
// left untouched.
type LineItemPatch struct {
	Name          *string  `json:"name,omitempty"`
	Qty           *float64 `json:"qty,omitempty"`
	UnitType      *string  `json:"unit_type,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	SellingPrice  *float64 `json:"selling_price,omitempty"`
	Free          *bool    `json:"free,omitempty"`
}

// ItemList is an ordered collection of line items. It is the sole input to
// the pricing calculations.
type ItemList struct {
	items []LineItem
}

// NewItemList builds an ItemList from existing items, copying the slice.
func NewItemList(items []LineItem) *ItemList {
	l := &ItemList{items: make([]LineItem, len(items))}
	copy(l.items, items)
	return l
}

// Items returns a copy of the underlying item slice.
func (l *ItemList) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *ItemList) Len() int { return len(l.items) }

// At returns the item at index i. The index must be in range.
func (l *ItemList) At(i int) LineItem {
	l.mustIndex(i)
	return l.items[i]
}

// Add appends an item. The free promotional slot is exclusive per product
// type: adding a free item when one of the same type already exists replaces
// it instead of duplicating.
func (l *ItemList) Add(it LineItem) {
	if it.Free {
		for i, existing := range l.items {
			if existing.Free && existing.ProductType == it.ProductType {
				l.items[i] = it
				return
			}
		}
	}
	l.items = append(l.items, it)
}

// Remove deletes the item at index i, preserving order.
func (l *ItemList) Remove(i int) {
	l.mustIndex(i)
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Update shallow-merges patch into the item at index i. Clearing the free
// flag on the promotional item removes the item entirely so no orphaned
// zero-price line survives the toggle.
func (l *ItemList) Update(i int, patch LineItemPatch) {
	l.mustIndex(i)
	it := &l.items[i]
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Qty != nil {
		it.Qty = *patch.Qty
	}
	if patch.UnitType != nil {
		it.UnitType = UnitType(*patch.UnitType)
	}
	if patch.PurchasePrice != nil {
		it.PurchasePrice = *patch.PurchasePrice
	}
	if patch.SellingPrice != nil {
		it.SellingPrice = *patch.SellingPrice
	}
	if patch.Free != nil {
		wasFree := it.Free
		it.Free = *patch.Free
		if wasFree && !it.Free {
			l.Remove(i)
		}
	}
}

// RemoveFree drops every free promotional item from the list.
func (l *ItemList) RemoveFree() {
	kept := l.items[:0]
	for _, it := range l.items {
		if !it.Free {
			kept = append(kept, it)
		}
	}
	l.items = kept
}

// TotalCost sums purchase price × quantity over all items. Free items are
// included: their purchase cost still counts against the margin.
func (l *ItemList) TotalCost() float64 {
	var total float64
	for _, it := range l.items {
		total += it.PurchasePrice * it.Qty
	}
	return total
}

// SellingSubtotal sums effective selling price × quantity, so free items
// contribute nothing.
func (l *ItemList) SellingSubtotal() float64 {
	var total float64
	for _, it := range l.items {
		total += it.EffectiveSellingPrice() * it.Qty
	}
	return total
}

// HasCategory reports whether any item belongs to the given category.
func (l *ItemList) HasCategory(c Category) bool {
	for _, it := range l.items {
		if it.ProductType == c {
			return true
		}
	}
	return false
}

func (l *ItemList) mustIndex(i int) {
	if i < 0 || i >= len(l.items) {
		panic(fmt.Sprintf("items: index %d out of range (len %d)", i, len(l.items)))
	}
}
