package calculator

import (
	"errors"
	"math"

	"QuantSentinel/internal/model"
)

// DMIResult holds the directional movement system outputs.
type DMIResult struct {
	PlusDI  float64
	MinusDI float64
	ADX     float64
}

// CalculateDMI computes the classic directional movement system: true
// range and ±DM from consecutive high/low deltas, period rolling sums for
// +DI/−DI, and ADX as the rolling mean of DX over the same period. Each
// output independently degrades to 0.0 when it cannot be computed; ADX
// needs roughly twice the period in bars before it becomes available.
func CalculateDMI(series *model.Series, period int) (DMIResult, error) {
	if period <= 0 {
		return DMIResult{}, errors.New("period must be positive")
	}
	n := series.Len()
	if n < period {
		return DMIResult{}, nil
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 0; i < n; i++ {
		bar := series.Bar(i)
		if i == 0 {
			// No previous close yet; the bar's own range stands in.
			tr[0] = bar.High - bar.Low
			continue
		}
		prev := series.Bar(i - 1)
		tr[i] = math.Max(bar.High-bar.Low,
			math.Max(math.Abs(bar.High-prev.Close), math.Abs(bar.Low-prev.Close)))

		upMove := bar.High - prev.High
		downMove := prev.Low - bar.Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	// Rolling sums, then DX per position where the window is full.
	sum := func(vals []float64, end int) float64 { // sum of vals[end-period+1 .. end]
		s := 0.0
		for i := end - period + 1; i <= end; i++ {
			s += vals[i]
		}
		return s
	}

	diAt := func(end int) (float64, float64) {
		trSum := sum(tr, end)
		if trSum == 0 {
			return math.NaN(), math.NaN()
		}
		return 100 * sum(plusDM, end) / trSum, 100 * sum(minusDM, end) / trSum
	}

	plusDI, minusDI := diAt(n - 1)

	// ADX: mean of the last `period` DX values, each needing a full DI window.
	adx := math.NaN()
	if n >= 2*period-1 {
		dxSum, dxCount := 0.0, 0
		for end := n - period; end < n; end++ {
			p, m := diAt(end)
			if !finite(p) || !finite(m) || p+m == 0 {
				continue
			}
			dxSum += 100 * math.Abs(p-m) / (p + m)
			dxCount++
		}
		if dxCount == period {
			adx = dxSum / float64(period)
		}
	}

	res := DMIResult{PlusDI: plusDI, MinusDI: minusDI, ADX: adx}
	if !finite(res.PlusDI) {
		res.PlusDI = 0.0
	}
	if !finite(res.MinusDI) {
		res.MinusDI = 0.0
	}
	if !finite(res.ADX) {
		res.ADX = 0.0
	}
	return res, nil
}
