package calculator

import (
	"errors"

	"QuantSentinel/internal/model"
)

// Bands holds the three Bollinger band members.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// DefaultBands returns the documented fallback bands around a price:
// upper = price·1.02, middle = price, lower = price·0.98.
func DefaultBands(price float64) Bands {
	return Bands{Upper: price * 1.02, Middle: price, Lower: price * 0.98}
}

// CalculateBollingerBands computes SMA(period) ± k·stddev(period) over
// closes. Non-finite members fall back to the default bands around the
// latest close, and every member is then kept on the financially sane
// side of price: upper in [1.02p, 1.5p], middle in [0.8p, 1.2p], lower
// in [0.5p, 0.98p]. The lower ≤ middle ≤ upper ordering holds for every
// valid input.
func CalculateBollingerBands(series *model.Series, period int, k float64) (Bands, error) {
	if period <= 0 {
		return Bands{}, errors.New("period must be positive")
	}
	if k <= 0 {
		return Bands{}, errors.New("k must be positive")
	}

	price := series.LastClose()
	n := series.Len()

	upper, middle, lower := 0.0, 0.0, 0.0
	if n >= period {
		closes := series.Closes()
		window := closes[n-period:]
		middle = mean(window)
		std := sampleStdDev(window)
		upper = middle + k*std
		lower = middle - k*std
	}

	if n < period || !finite(upper) {
		upper = price * 1.02
	}
	if n < period || !finite(middle) {
		middle = price
	}
	if n < period || !finite(lower) {
		lower = price * 0.98
	}

	return Bands{
		Upper:  clamp(upper, price*1.02, price*1.5),
		Middle: clamp(middle, price*0.8, price*1.2),
		Lower:  clamp(lower, price*0.5, price*0.98),
	}, nil
}
