package engine

import (
	"time"

	"QuantSentinel/internal/model"
)

// Row is one raw kline row as returned by a crypto data source. Column
// meaning depends on the upstream shape; see normalizeRows.
type Row []float64

// CryptoSource is the injected market-data collaborator for crypto pairs.
// Any call may report "no data" by returning a zero value with a nil
// error; the engine treats absence as a normal, handled case.
type CryptoSource interface {
	// RealtimePrice returns the current price, or 0 when the pair is unknown.
	RealtimePrice(symbol string) (float64, error)

	// Klines returns up to limit recent raw kline rows.
	Klines(symbol, interval string, limit int) ([]Row, error)

	// HistoricalKlines returns raw kline rows from start onward.
	HistoricalKlines(symbol, interval string, start time.Time) ([]Row, error)

	Name() string
}

// FundingSource exposes the perpetual-futures funding endpoints used by
// the funding-rate fallback chain.
type FundingSource interface {
	// FundingRate returns the current funding rate, 0 when unavailable.
	FundingRate(symbol string) (float64, error)

	// PredictedFundingRate returns the indicative rate from contract
	// metadata, 0 when unavailable.
	PredictedFundingRate(symbol string) (float64, error)

	// FundingRateHistory returns up to limit recent historical rates.
	FundingRateHistory(symbol string, limit int) ([]float64, error)
}

// EquitySource is the injected collaborator for equity markets.
type EquitySource interface {
	// FormatSymbol maps a bare code to the source's canonical form
	// (e.g. 600519 → 600519.SH).
	FormatSymbol(symbol string) string

	// RealtimePrice returns the current price, or 0 when the code is unknown.
	RealtimePrice(code string) (float64, error)

	// DailyBars returns up to limit daily bars between start and end.
	DailyBars(code string, start, end time.Time, limit int) ([]model.Bar, error)

	// DailyBasic returns the most recent fundamentals snapshot, or nil
	// when none is available.
	DailyBasic(code string) (*model.Fundamentals, error)

	Name() string
}
