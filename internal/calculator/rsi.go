package calculator

import (
	"errors"

	"QuantSentinel/internal/model"
)

// DefaultRSI is returned when history is too short for a meaningful RSI.
const DefaultRSI = 50.0

// CalculateRSI computes the Relative Strength Index over the trailing
// rolling window of `period` close-to-close deltas. Requires `period`
// bars; returns 50.0 when data is insufficient. Result is clamped to
// [0, 100].
func CalculateRSI(series *model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	n := series.Len()
	if n < period {
		return DefaultRSI, nil
	}

	closes := series.Closes()

	// Average gain and loss over the last `period` deltas. The very
	// first bar has no previous close; its delta counts as flat.
	var avgGain, avgLoss float64
	for i := n - period; i < n; i++ {
		if i == 0 {
			continue
		}
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return DefaultRSI, nil // flat series, no direction
		}
		return 100.0, nil
	}

	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	if !finite(rsi) {
		return DefaultRSI, nil
	}
	return clamp(rsi, 0, 100), nil
}
