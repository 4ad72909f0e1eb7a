package source

import (
	"time"

	"QuantSentinel/internal/engine"
	"QuantSentinel/internal/model"
)

// MockCryptoSource returns controllable fixed data for development and
// testing. Zero-value fields read as "no data", mirroring real sources.
type MockCryptoSource struct {
	Price        float64
	Rows         []engine.Row
	CompactRows  []engine.Row // returned by the reduced-budget retry when set
	FundingValue float64
	Predicted    float64
	History      []float64

	PriceErr error
	RowsErr  error
}

func (m *MockCryptoSource) Name() string { return "mock-crypto" }

func (m *MockCryptoSource) RealtimePrice(_ string) (float64, error) {
	return m.Price, m.PriceErr
}

func (m *MockCryptoSource) HistoricalKlines(_, _ string, _ time.Time) ([]engine.Row, error) {
	return m.Rows, m.RowsErr
}

func (m *MockCryptoSource) Klines(_, _ string, _ int) ([]engine.Row, error) {
	if m.CompactRows != nil {
		return m.CompactRows, nil
	}
	return m.Rows, m.RowsErr
}

func (m *MockCryptoSource) FundingRate(_ string) (float64, error) {
	return m.FundingValue, nil
}

func (m *MockCryptoSource) PredictedFundingRate(_ string) (float64, error) {
	return m.Predicted, nil
}

func (m *MockCryptoSource) FundingRateHistory(_ string, limit int) ([]float64, error) {
	if len(m.History) > limit {
		return m.History[:limit], nil
	}
	return m.History, nil
}

// MockEquitySource returns controllable fixed data for equity markets.
type MockEquitySource struct {
	Price        float64
	Bars         []model.Bar
	Fundamentals *model.Fundamentals

	PriceErr error
	BarsErr  error
}

func (m *MockEquitySource) Name() string { return "mock-equity" }

func (m *MockEquitySource) FormatSymbol(symbol string) string {
	return (&TushareSource{}).FormatSymbol(symbol)
}

func (m *MockEquitySource) RealtimePrice(_ string) (float64, error) {
	return m.Price, m.PriceErr
}

func (m *MockEquitySource) DailyBars(_ string, _, _ time.Time, limit int) ([]model.Bar, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if len(m.Bars) > limit {
		return m.Bars[len(m.Bars)-limit:], nil
	}
	return m.Bars, nil
}

func (m *MockEquitySource) DailyBasic(_ string) (*model.Fundamentals, error) {
	return m.Fundamentals, nil
}
