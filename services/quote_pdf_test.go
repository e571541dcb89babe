package services

import (
	"testing"
	"time"
)

func TestGenerateQuotePDF_Basic(t *testing.T) {
	data := BuildQuoteExportData(exportDraft(), "SIT-Q-2026-0042",
		time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), DefaultSiteSettings())

	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateQuotePDF_NoItems(t *testing.T) {
	d := &Draft{
		Kind:         "quotation",
		Name:         "Asha Traders",
		Address:      "42 MG Road, Pune",
		SystemType:   SystemAnalog,
		ChannelCount: 4,
	}
	data := BuildQuoteExportData(d, "", time.Now(), DefaultSiteSettings())

	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
}

func TestGenerateQuotePDF_ManyRows(t *testing.T) {
	d := exportDraft()
	for i := 0; i < 60; i++ {
		d.Items.Add(LineItem{
			ProductType:   CategoryAccessory,
			Name:          "Junction Box",
			Qty:           float64(i + 1),
			UnitType:      UnitPiece,
			PurchasePrice: 45,
			SellingPrice:  80,
		})
	}
	data := BuildQuoteExportData(d, "SIT-Q-2026-0099", time.Now(), DefaultSiteSettings())

	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
}
