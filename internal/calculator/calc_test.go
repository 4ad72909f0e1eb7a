package calculator

import (
	"math"
	"time"

	"QuantSentinel/internal/model"
)

// seriesOf builds a daily series around the given closes, with a small
// high/low band and constant volume.
func seriesOf(closes ...float64) *model.Series {
	return seriesWithVolume(1000, closes...)
}

func seriesWithVolume(volume float64, closes ...float64) *model.Series {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   base.AddDate(0, 0, i),
			Open:   c * 0.999,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: volume,
		}
	}
	return model.NewSeries(bars)
}

// linearCloses returns n closes rising (or falling) linearly from start to end.
func linearCloses(n int, start, end float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + (end-start)*float64(i)/float64(n-1)
	}
	return closes
}

// flatCloses returns n identical closes.
func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
