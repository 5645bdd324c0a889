package printer

import (
	"bytes"
	"testing"
)

func TestGenerateLabelsPDF(t *testing.T) {
	labels := []Label{
		{Reference: "c-0001", Caption: "Arduino Uno R3"},
		{Reference: "c-0002", Caption: "Raspberry Pi 4"},
	}

	pdf, err := GenerateLabelsPDF(SheetConfig{BaseURL: "CIRCUITOLOGY/"}, labels)
	if err != nil {
		t.Fatalf("Failed to generate PDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("PDF should not be empty")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("Output should start with a PDF header")
	}
}

func TestGenerateLabelsPDFEmpty(t *testing.T) {
	pdf, err := GenerateLabelsPDF(SheetConfig{}, nil)
	if err != nil {
		t.Fatalf("Empty label list should not fail: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("Even an empty sheet should produce a PDF document")
	}
}

func TestSheetConfigDefaults(t *testing.T) {
	cfg := SheetConfig{}
	cfg.ApplyDefaults()
	if cfg.Cols != 3 || cfg.Rows != 7 {
		t.Errorf("Expected 3x7 default layout, got %dx%d", cfg.Cols, cfg.Rows)
	}
}
