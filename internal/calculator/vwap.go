package calculator

import (
	"errors"

	"QuantSentinel/internal/model"
)

// netflowBound limits the netflow proxy to ±1000%.
const netflowBound = 1000.0

// CalculateVWAP computes the volume-weighted average of the typical price
// (high+low+close)/3 over the entire provided series. Defaults to the
// latest close when total volume is zero or the result is non-finite.
func CalculateVWAP(series *model.Series) float64 {
	n := series.Len()
	if n == 0 {
		return 0.0
	}

	var priceVolume, totalVolume float64
	for i := 0; i < n; i++ {
		bar := series.Bar(i)
		priceVolume += bar.TypicalPrice() * bar.Volume
		totalVolume += bar.Volume
	}
	if totalVolume == 0 {
		return series.LastClose()
	}
	vwap := priceVolume / totalVolume
	if !finite(vwap) {
		return series.LastClose()
	}
	return vwap
}

// CalculateExchangeNetflow computes the netflow proxy: how far today's
// traded value (volume·close) sits from its trailing `period` average, as
// a percentage of that average. Clamped to ±1000; 0.0 when the average
// window is not filled or the average is zero.
func CalculateExchangeNetflow(series *model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	n := series.Len()
	if n < period {
		return 0.0, nil
	}

	flows := make([]float64, n)
	for i := 0; i < n; i++ {
		bar := series.Bar(i)
		flows[i] = bar.Volume * bar.Close
	}

	avg := mean(flows[n-period:])
	if avg == 0 || !finite(avg) {
		return 0.0, nil
	}
	ratio := (flows[n-1] - avg) / avg * 100
	if !finite(ratio) {
		return 0.0, nil
	}
	return clamp(ratio, -netflowBound, netflowBound), nil
}
