package calculator

import (
	"errors"

	"QuantSentinel/internal/model"
)

// DefaultMayerMultiple is the neutral reading when the long moving
// average cannot be computed.
const DefaultMayerMultiple = 1.0

// mayerMinWindow is the smallest effective window that still yields a
// meaningful moving-average ratio.
const mayerMinWindow = 20

// CalculateNUPL computes the net unrealized profit/loss proxy: the
// percentage distance of the current close from the volume-weighted
// "realized price" (typical price weighted by volume) over the trailing
// window. Clamped to ±100; returns 0.0 when fewer than `window` bars are
// available, total window volume is zero, or any intermediate value is
// non-finite.
func CalculateNUPL(series *model.Series, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	n := series.Len()
	if n < window {
		return 0.0, nil
	}

	actual := window
	if n-1 < actual {
		actual = n - 1
	}
	if actual <= 0 {
		return 0.0, nil
	}

	var priceVolume, totalVolume float64
	for i := n - actual; i < n; i++ {
		bar := series.Bar(i)
		priceVolume += bar.TypicalPrice() * bar.Volume
		totalVolume += bar.Volume
	}
	if totalVolume == 0 || !finite(totalVolume) {
		return 0.0, nil
	}

	realized := priceVolume / totalVolume
	if realized == 0 || !finite(realized) {
		return 0.0, nil
	}

	current := series.LastClose()
	nupl := (current - realized) / realized * 100
	if !finite(nupl) {
		return 0.0, nil
	}
	return clamp(nupl, -100.0, 100.0), nil
}

// CalculateMayerMultiple computes current close divided by its trailing
// window moving average, clamped to [0.1, 10]. Returns 1.0 when fewer
// than 20 bars are usable or the moving average is zero or non-finite.
func CalculateMayerMultiple(series *model.Series, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	n := series.Len()

	actual := window
	if n-1 < actual {
		actual = n - 1
	}
	if actual < mayerMinWindow {
		return DefaultMayerMultiple, nil
	}

	closes := series.Closes()
	ma := mean(closes[n-actual:])
	if ma == 0 || !finite(ma) {
		return DefaultMayerMultiple, nil
	}

	multiple := closes[n-1] / ma
	if !finite(multiple) {
		return DefaultMayerMultiple, nil
	}
	return clamp(multiple, 0.1, 10.0), nil
}
