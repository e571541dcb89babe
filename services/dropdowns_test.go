package services

import (
	"testing"
)

func TestChannelOptions(t *testing.T) {
	expected := []int{4, 8, 16, 32}
	if len(ChannelOptions) != len(expected) {
		t.Fatalf("expected %d channel options, got %d", len(expected), len(ChannelOptions))
	}
	for i, v := range expected {
		if ChannelOptions[i] != v {
			t.Errorf("ChannelOptions[%d] = %d, want %d", i, ChannelOptions[i], v)
		}
	}
}

func TestStatusOptions(t *testing.T) {
	if len(QuotationStatusOptions) != 4 {
		t.Errorf("expected 4 quotation statuses, got %d", len(QuotationStatusOptions))
	}
	if QuotationStatusOptions[0] != "draft" {
		t.Errorf("first quotation status = %q, want draft", QuotationStatusOptions[0])
	}
	if len(KitStatusOptions) != 3 {
		t.Errorf("expected 3 kit statuses, got %d", len(KitStatusOptions))
	}
	for _, s := range append(append([]string{}, QuotationStatusOptions...), KitStatusOptions...) {
		if s == "" {
			t.Error("status options contain an empty string")
		}
	}
}

func TestUnitTypeOptions(t *testing.T) {
	if len(UnitTypeOptions) != 2 {
		t.Fatalf("expected 2 unit types, got %d", len(UnitTypeOptions))
	}
	if UnitTypeOptions[0] != UnitPiece || UnitTypeOptions[1] != UnitMeter {
		t.Errorf("UnitTypeOptions = %v, want [piece meter]", UnitTypeOptions)
	}
}

func TestResolutionAndCableOptions(t *testing.T) {
	for _, opt := range ResolutionOptions {
		if opt == "" {
			t.Error("ResolutionOptions contains empty string")
		}
	}
	for _, opt := range CableTypeOptions {
		if opt == "" {
			t.Error("CableTypeOptions contains empty string")
		}
	}
}
