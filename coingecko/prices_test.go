package coingecko

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCurrentPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "bitcoin,chainlink" {
			t.Errorf("ids = %q, want %q", got, "bitcoin,chainlink")
		}
		fmt.Fprint(w, `{"bitcoin": {"usd": 61163.0}, "chainlink": {"usd": 18.78}}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	snapshot, err := c.CurrentPrices([]string{"bitcoin", "chainlink"}, "usd")
	if err != nil {
		t.Fatalf("CurrentPrices() unexpected error = %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("CurrentPrices() returned %d prices, want 2", len(snapshot))
	}
	if snapshot["bitcoin"] != 61163.0 {
		t.Errorf("bitcoin price = %v, want 61163", snapshot["bitcoin"])
	}
	if snapshot["chainlink"] != 18.78 {
		t.Errorf("chainlink price = %v, want 18.78", snapshot["chainlink"])
	}
}

func TestCurrentPrices_unknownQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the API omits quotes it does not serve
		fmt.Fprint(w, `{"bitcoin": {}}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	snapshot, err := c.CurrentPrices([]string{"bitcoin"}, "xyz")
	if err != nil {
		t.Fatalf("CurrentPrices() unexpected error = %v", err)
	}
	if _, ok := snapshot["bitcoin"]; ok {
		t.Error("CurrentPrices() must not invent a price for an unserved quote")
	}
}

func TestHistoricalPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"prices": [[1712000000000, 61000.5], [1712003600000, 61100.25]]}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	series, err := c.HistoricalPrices("bitcoin", "usd", 30)
	if err != nil {
		t.Fatalf("HistoricalPrices() unexpected error = %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("HistoricalPrices() returned %d samples, want 2", series.Len())
	}
	on, v := series.First()
	if !on.Equal(time.UnixMilli(1712000000000).UTC()) {
		t.Errorf("first sample time = %v, want %v", on, time.UnixMilli(1712000000000).UTC())
	}
	if v != 61000.5 {
		t.Errorf("first sample value = %v, want 61000.5", v)
	}
}

func TestCurrentPrices_httpError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	if _, err := c.CurrentPrices([]string{"bitcoin"}, "usd"); err == nil {
		t.Error("CurrentPrices() must surface HTTP errors, got nil")
	}
}
