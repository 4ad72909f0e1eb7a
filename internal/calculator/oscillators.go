package calculator

import (
	"errors"

	"QuantSentinel/internal/model"
)

// DefaultPSY is the neutral psychological-line reading.
const DefaultPSY = 50.0

// CalculateBIAS computes the deviation rate of the latest close from its
// period moving average: (close − SMA) / SMA × 100. Returns 0.0 when the
// history is shorter than the period or the result is non-finite.
func CalculateBIAS(series *model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	n := series.Len()
	if n < period {
		return 0.0, nil
	}

	closes := series.Closes()
	ma := mean(closes[n-period:])
	if ma == 0 {
		return 0.0, nil
	}
	bias := (closes[n-1] - ma) / ma * 100
	if !finite(bias) {
		return 0.0, nil
	}
	return bias, nil
}

// CalculatePSY computes the psychological line: the percentage of up-days
// (close above the previous close) over the trailing window. Returns 50.0
// when history is shorter than the period.
func CalculatePSY(series *model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	n := series.Len()
	if n < period {
		return DefaultPSY, nil
	}

	closes := series.Closes()
	up := 0
	for i := n - period; i < n; i++ {
		// The very first bar has no previous close; it counts as flat.
		if i > 0 && closes[i] > closes[i-1] {
			up++
		}
	}
	return float64(up) / float64(period) * 100, nil
}
