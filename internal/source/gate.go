// Package source provides concrete data-source collaborators for the
// indicator engine: Gate for crypto pairs, Tushare for China A-shares,
// and controllable mock sources for tests and offline runs.
package source

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"QuantSentinel/internal/engine"
)

const gateDefaultBaseURL = "https://api.gateio.ws/api/v4"

// GateSource implements the crypto data-source contract over the Gate
// REST API (public spot and USDT-futures endpoints).
type GateSource struct {
	BaseURL string
	Client  *http.Client
}

// NewGateSource creates a Gate source with optional base URL override and
// proxy support.
func NewGateSource(baseURL, proxyURL string) *GateSource {
	if baseURL == "" {
		baseURL = gateDefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GateSource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (g *GateSource) Name() string { return "gate" }

// currencyPair converts BTCUSDT to Gate's BTC_USDT form.
func currencyPair(symbol string) string {
	s := strings.ToUpper(symbol)
	if strings.Contains(s, "_") {
		return s
	}
	if strings.HasSuffix(s, "USDT") {
		return strings.TrimSuffix(s, "USDT") + "_USDT"
	}
	return s
}

func (g *GateSource) get(path string, params url.Values, out any) error {
	u := g.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	resp, err := g.Client.Get(u)
	if err != nil {
		return fmt.Errorf("gate fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gate read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gate: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("gate decode: %w", err)
	}
	return nil
}

// RealtimePrice returns the last traded price, or 0 when the pair is unknown.
func (g *GateSource) RealtimePrice(symbol string) (float64, error) {
	params := url.Values{"currency_pair": {currencyPair(symbol)}}

	var tickers []struct {
		Last string `json:"last"`
	}
	if err := g.get("/spot/tickers", params, &tickers); err != nil {
		return 0, err
	}
	if len(tickers) == 0 {
		return 0, nil
	}
	price, err := strconv.ParseFloat(tickers[0].Last, 64)
	if err != nil {
		return 0, fmt.Errorf("gate parse price: %w", err)
	}
	return price, nil
}

// Klines returns raw candlestick rows in Gate's native compact order
// [ts, volume, close, high, low, open]; the engine normalizes shapes.
func (g *GateSource) Klines(symbol, interval string, limit int) ([]engine.Row, error) {
	params := url.Values{
		"currency_pair": {currencyPair(symbol)},
		"interval":      {interval},
		"limit":         {strconv.Itoa(limit)},
	}
	return g.fetchCandles(params)
}

// HistoricalKlines returns raw candlestick rows from start onward.
func (g *GateSource) HistoricalKlines(symbol, interval string, start time.Time) ([]engine.Row, error) {
	params := url.Values{
		"currency_pair": {currencyPair(symbol)},
		"interval":      {interval},
		"from":          {strconv.FormatInt(start.Unix(), 10)},
	}
	return g.fetchCandles(params)
}

func (g *GateSource) fetchCandles(params url.Values) ([]engine.Row, error) {
	var raw [][]string
	if err := g.get("/spot/candlesticks", params, &raw); err != nil {
		return nil, err
	}

	rows := make([]engine.Row, 0, len(raw))
	for _, cols := range raw {
		row := make(engine.Row, 0, len(cols))
		ok := true
		// Keep the compact six-column prefix; trailing columns vary by API version.
		if len(cols) > 6 {
			cols = cols[:6]
		}
		for _, col := range cols {
			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				ok = false
				break
			}
			row = append(row, v)
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// FundingRate returns the current perpetual funding rate, 0 when absent.
func (g *GateSource) FundingRate(symbol string) (float64, error) {
	params := url.Values{
		"contract": {currencyPair(symbol)},
		"limit":    {"1"},
	}

	var records []struct {
		Rate string `json:"r"`
	}
	if err := g.get("/futures/usdt/funding_rate", params, &records); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	rate, err := strconv.ParseFloat(records[0].Rate, 64)
	if err != nil {
		return 0, fmt.Errorf("gate parse funding rate: %w", err)
	}
	return rate, nil
}

// PredictedFundingRate returns the indicative rate from contract metadata.
func (g *GateSource) PredictedFundingRate(symbol string) (float64, error) {
	contract := currencyPair(symbol)

	var info struct {
		FundingRateIndicative string `json:"funding_rate_indicative"`
	}
	if err := g.get("/futures/usdt/contracts/"+contract, nil, &info); err != nil {
		return 0, err
	}
	if info.FundingRateIndicative == "" {
		return 0, nil
	}
	rate, err := strconv.ParseFloat(info.FundingRateIndicative, 64)
	if err != nil {
		return 0, fmt.Errorf("gate parse indicative rate: %w", err)
	}
	return rate, nil
}

// FundingRateHistory returns up to limit recent historical funding rates.
func (g *GateSource) FundingRateHistory(symbol string, limit int) ([]float64, error) {
	params := url.Values{
		"contract": {currencyPair(symbol)},
		"limit":    {strconv.Itoa(limit)},
	}

	var records []struct {
		Rate string `json:"r"`
	}
	if err := g.get("/futures/usdt/funding_rate", params, &records); err != nil {
		return nil, err
	}

	rates := make([]float64, 0, len(records))
	for _, rec := range records {
		if v, err := strconv.ParseFloat(rec.Rate, 64); err == nil {
			rates = append(rates, v)
		}
	}
	return rates, nil
}
