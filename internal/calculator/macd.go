package calculator

import (
	"errors"

	"QuantSentinel/internal/model"
)

// macdBound limits each MACD member to a financially plausible magnitude.
const macdBound = 10000.0

// MACDResult holds the three MACD members.
type MACDResult struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// CalculateMACD computes Moving Average Convergence/Divergence:
// EMA(fast) − EMA(slow) as the MACD line, EMA(signal) of that line as the
// signal line, and their difference as the histogram. Each member is
// clamped to ±10000; the zero result is returned for empty input.
func CalculateMACD(series *model.Series, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDResult{}, errors.New("periods must be positive")
	}
	if series.Len() == 0 {
		return MACDResult{}, nil
	}

	closes := series.Closes()
	fastEMA := ewma(closes, fast)
	slowEMA := ewma(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := ewma(line, signal)

	last := len(closes) - 1
	res := MACDResult{
		Line:      line[last],
		Signal:    signalLine[last],
		Histogram: line[last] - signalLine[last],
	}
	if !finite(res.Line) || !finite(res.Signal) || !finite(res.Histogram) {
		return MACDResult{}, nil
	}
	res.Line = clamp(res.Line, -macdBound, macdBound)
	res.Signal = clamp(res.Signal, -macdBound, macdBound)
	res.Histogram = clamp(res.Histogram, -macdBound, macdBound)
	return res, nil
}
