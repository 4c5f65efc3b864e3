package cryptofolio

import (
	"strings"
	"testing"
)

func TestDecodeHoldings(t *testing.T) {
	h, err := DecodeHoldings(strings.NewReader("asset,amount\nbitcoin,1.5\nethereum,10\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 2 {
		t.Fatalf("got %d holdings, want 2", len(h))
	}
	if h["bitcoin"] != 1.5 {
		t.Errorf("bitcoin = %v, want 1.5", h["bitcoin"])
	}
	if h["ethereum"] != 10 {
		t.Errorf("ethereum = %v, want 10", h["ethereum"])
	}
}

func TestDecodeHoldings_noHeader(t *testing.T) {
	h, err := DecodeHoldings(strings.NewReader("bitcoin,1.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if h["bitcoin"] != 1.5 {
		t.Errorf("bitcoin = %v, want 1.5", h["bitcoin"])
	}
}

func TestDecodeHoldings_rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"negative amount", "bitcoin,-1\n"},
		{"duplicate asset", "bitcoin,1\nbitcoin,2\n"},
		{"bad amount", "asset,amount\nbitcoin,abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeHoldings(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeHoldings(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestNewHoldings(t *testing.T) {
	if _, err := NewHoldings(map[string]float64{"": 1}); err == nil {
		t.Error("empty asset id accepted")
	}
	if _, err := NewHoldings(map[string]float64{"bitcoin": -1}); err == nil {
		t.Error("negative amount accepted")
	}
}

func TestHoldings_CloneIsIndependent(t *testing.T) {
	h, err := NewHoldings(map[string]float64{"bitcoin": 1})
	if err != nil {
		t.Fatal(err)
	}
	c := h.Clone()
	c["bitcoin"] = 99
	if h["bitcoin"] != 1 {
		t.Errorf("clone mutation reached the original: %v", h)
	}
}

func TestPriceSnapshot_Covers(t *testing.T) {
	h, err := NewHoldings(map[string]float64{"bitcoin": 1, "ethereum": 1})
	if err != nil {
		t.Fatal(err)
	}

	if missing, ok := (PriceSnapshot{"bitcoin": 1, "ethereum": 1}).Covers(h); !ok {
		t.Errorf("full snapshot reported %q missing", missing)
	}
	missing, ok := (PriceSnapshot{"ethereum": 1}).Covers(h)
	if ok || missing != "bitcoin" {
		t.Errorf("Covers = (%q, %v), want (\"bitcoin\", false)", missing, ok)
	}
}
