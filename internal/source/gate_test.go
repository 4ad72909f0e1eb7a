package source

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCurrencyPair(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BTCUSDT", "BTC_USDT"},
		{"btcusdt", "BTC_USDT"},
		{"ETH_USDT", "ETH_USDT"},
		{"1000PEPEUSDT", "1000PEPE_USDT"},
		{"BTC", "BTC"},
	}
	for _, tt := range tests {
		if got := currencyPair(tt.in); got != tt.want {
			t.Errorf("currencyPair(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGateSource_RealtimePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spot/tickers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if pair := r.URL.Query().Get("currency_pair"); pair != "BTC_USDT" {
			t.Errorf("unexpected pair %s", pair)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"last": "64123.5"}})
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	price, err := g.RealtimePrice("BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 64123.5 {
		t.Errorf("price = %v, want 64123.5", price)
	}
}

func TestGateSource_RealtimePrice_UnknownPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	price, err := g.RealtimePrice("NOPEUSDT")
	if err != nil {
		t.Fatalf("unknown pair should not error: %v", err)
	}
	if price != 0 {
		t.Errorf("expected zero price, got %v", price)
	}
}

func TestGateSource_Klines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spot/candlesticks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// Gate's compact order plus two extra columns newer API versions add.
		json.NewEncoder(w).Encode([][]string{
			{"1704067200", "1000", "105", "110", "95", "100", "123", "true"},
			{"1704153600", "not-a-number", "105", "110", "95", "100"},
		})
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	rows, err := g.Klines("BTCUSDT", "1d", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unparsable rows must be skipped, got %d rows", len(rows))
	}
	if len(rows[0]) != 6 {
		t.Fatalf("trailing columns must be truncated, got %d cols", len(rows[0]))
	}
	// [ts, volume, close, high, low, open]
	if rows[0][2] != 105 || rows[0][5] != 100 {
		t.Errorf("columns misparsed: %v", rows[0])
	}
}

func TestGateSource_HistoricalKlines_From(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if from := r.URL.Query().Get("from"); from != "1704067200" {
			t.Errorf("unexpected from %s", from)
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	if _, err := g.HistoricalKlines("BTCUSDT", "1d", start); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGateSource_FundingRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/futures/usdt/funding_rate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]string{{"r": "0.000125"}})
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	rate, err := g.FundingRate("BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.000125 {
		t.Errorf("rate = %v, want 0.000125", rate)
	}
}

func TestGateSource_PredictedFundingRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/futures/usdt/contracts/BTC_USDT" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"funding_rate_indicative": "0.0002"})
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	rate, err := g.PredictedFundingRate("BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.0002 {
		t.Errorf("rate = %v, want 0.0002", rate)
	}
}

func TestGateSource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGateSource(srv.URL, "")
	if _, err := g.RealtimePrice("BTCUSDT"); err == nil {
		t.Error("expected error on HTTP 500")
	}
}
