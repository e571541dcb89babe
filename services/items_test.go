package services

import (
	"math"
	"testing"
)

func cameraItem(qty, purchase, selling float64) LineItem {
	return LineItem{
		ProductType:   CategoryCamera,
		Name:          "2MP Dome Camera",
		Qty:           qty,
		UnitType:      UnitPiece,
		PurchasePrice: purchase,
		SellingPrice:  selling,
	}
}

func TestItemListTotalCost(t *testing.T) {
	tests := []struct {
		name   string
		items  []LineItem
		expect float64
	}{
		{"empty list", nil, 0},
		{"single item", []LineItem{cameraItem(4, 1200, 1800)}, 4800},
		{
			"mixed units",
			[]LineItem{
				cameraItem(2, 1200, 1800),
				{ProductType: CategoryCable, Name: "3+1 Cable", Qty: 90.5, UnitType: UnitMeter, PurchasePrice: 18, SellingPrice: 28},
			},
			2400 + 90.5*18,
		},
		{
			"free item cost still counts",
			[]LineItem{
				cameraItem(1, 1200, 1800),
				{ProductType: CategoryAccessory, Name: "Mouse", Qty: 1, UnitType: UnitPiece, PurchasePrice: 250, SellingPrice: 400, Free: true},
			},
			1450,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewItemList(tt.items)
			if got := l.TotalCost(); math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("TotalCost() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestItemListTotalCostOrderIndependent(t *testing.T) {
	a := cameraItem(2, 1200, 1800)
	b := LineItem{ProductType: CategoryRecorder, Name: "4ch DVR", Qty: 1, UnitType: UnitPiece, PurchasePrice: 2800, SellingPrice: 3900}
	c := LineItem{ProductType: CategoryStorage, Name: "1TB HDD", Qty: 1, UnitType: UnitPiece, PurchasePrice: 3100, SellingPrice: 3800}

	forward := NewItemList([]LineItem{a, b, c}).TotalCost()
	backward := NewItemList([]LineItem{c, b, a}).TotalCost()
	if forward != backward {
		t.Errorf("TotalCost depends on item order: %v vs %v", forward, backward)
	}
}

func TestItemListSellingSubtotal(t *testing.T) {
	l := NewItemList([]LineItem{
		cameraItem(2, 1200, 1800),
		{ProductType: CategoryAccessory, Name: "Mouse", Qty: 1, UnitType: UnitPiece, PurchasePrice: 250, SellingPrice: 400, Free: true},
	})
	// free item sells at zero regardless of its stored selling price
	if got := l.SellingSubtotal(); got != 3600 {
		t.Errorf("SellingSubtotal() = %v, want 3600", got)
	}
}

func TestItemListAddFreeReplaces(t *testing.T) {
	l := NewItemList(nil)
	l.Add(cameraItem(4, 1200, 1800))
	l.Add(LineItem{ProductType: CategoryAccessory, Name: "Mouse", Qty: 1, UnitType: UnitPiece, PurchasePrice: 250, Free: true})
	l.Add(LineItem{ProductType: CategoryAccessory, Name: "Keyboard", Qty: 1, UnitType: UnitPiece, PurchasePrice: 450, Free: true})

	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (second free accessory should replace the first)", l.Len())
	}
	if got := l.At(1).Name; got != "Keyboard" {
		t.Errorf("free slot holds %q, want Keyboard", got)
	}
}

func TestItemListAddFreeDifferentTypesCoexist(t *testing.T) {
	l := NewItemList(nil)
	l.Add(LineItem{ProductType: CategoryAccessory, Name: "Mouse", Qty: 1, Free: true})
	l.Add(LineItem{ProductType: CategoryStorage, Name: "Pen Drive", Qty: 1, Free: true})
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (free items of different types must coexist)", l.Len())
	}
}

func TestItemListUpdate(t *testing.T) {
	l := NewItemList([]LineItem{cameraItem(4, 1200, 1800)})

	qty := 6.0
	selling := 1750.0
	l.Update(0, LineItemPatch{Qty: &qty, SellingPrice: &selling})

	got := l.At(0)
	if got.Qty != 6 || got.SellingPrice != 1750 {
		t.Errorf("Update() = qty %v price %v, want 6 / 1750", got.Qty, got.SellingPrice)
	}
	if got.Name != "2MP Dome Camera" || got.PurchasePrice != 1200 {
		t.Errorf("Update() touched fields outside the patch: %+v", got)
	}
}

func TestItemListUpdateClearingFreeRemovesItem(t *testing.T) {
	l := NewItemList([]LineItem{
		cameraItem(4, 1200, 1800),
		{ProductType: CategoryAccessory, Name: "Mouse", Qty: 1, Free: true},
	})

	off := false
	l.Update(1, LineItemPatch{Free: &off})

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (unchecking free should remove the item)", l.Len())
	}
	if l.At(0).ProductType != CategoryCamera {
		t.Errorf("wrong item removed: %+v", l.At(0))
	}
}

func TestItemListRemove(t *testing.T) {
	l := NewItemList([]LineItem{
		cameraItem(4, 1200, 1800),
		{ProductType: CategoryRecorder, Name: "4ch DVR", Qty: 1},
		{ProductType: CategoryStorage, Name: "1TB HDD", Qty: 1},
	})
	l.Remove(1)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if l.At(0).ProductType != CategoryCamera || l.At(1).ProductType != CategoryStorage {
		t.Errorf("Remove broke ordering: %v then %v", l.At(0).ProductType, l.At(1).ProductType)
	}
}

func TestItemListRemoveFree(t *testing.T) {
	l := NewItemList([]LineItem{
		cameraItem(4, 1200, 1800),
		{ProductType: CategoryAccessory, Name: "Mouse", Qty: 1, Free: true},
		{ProductType: CategoryStorage, Name: "Pen Drive", Qty: 1, Free: true},
	})
	l.RemoveFree()
	if l.Len() != 1 {
		t.Errorf("Len() = %d after RemoveFree, want 1", l.Len())
	}
}

func TestItemListHasCategory(t *testing.T) {
	l := NewItemList([]LineItem{cameraItem(4, 1200, 1800)})
	if !l.HasCategory(CategoryCamera) {
		t.Error("HasCategory(camera) = false, want true")
	}
	if l.HasCategory(CategoryRecorder) {
		t.Error("HasCategory(recorder) = true, want false")
	}
}

func TestEffectiveSellingPrice(t *testing.T) {
	paid := cameraItem(1, 1200, 1800)
	if got := paid.EffectiveSellingPrice(); got != 1800 {
		t.Errorf("paid item EffectiveSellingPrice() = %v, want 1800", got)
	}
	free := LineItem{SellingPrice: 400, Free: true}
	if got := free.EffectiveSellingPrice(); got != 0 {
		t.Errorf("free item EffectiveSellingPrice() = %v, want 0", got)
	}
}
