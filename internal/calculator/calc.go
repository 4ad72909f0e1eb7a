// Package calculator implements the technical indicator library.
//
// Every function is a pure read of an immutable model.Series, with no
// shared state and no I/O. Short history never raises: each indicator
// degrades to its documented default value instead, and every result is
// clamped to a documented finite range before it leaves the package.
package calculator

import "math"

// finite reports whether v is a usable number (not NaN, not ±Inf).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mean returns the arithmetic mean of vals, NaN for an empty slice.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator),
// NaN when fewer than two values are given.
func sampleStdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return math.NaN()
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// ewma computes an exponentially weighted moving average over vals with
// the given span, seeded with the first value:
//
//	ema[0] = vals[0]
//	ema[i] = alpha*vals[i] + (1-alpha)*ema[i-1],  alpha = 2/(span+1)
//
// Returns the full series so callers can derive dependent lines.
func ewma(vals []float64, span int) []float64 {
	if len(vals) == 0 {
		return nil
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(vals))
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}
