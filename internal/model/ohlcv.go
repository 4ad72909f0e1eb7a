package model

import (
	"sort"
	"time"
)

// Bar represents a single OHLCV candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Valid reports whether the bar satisfies basic price/volume sanity:
// high is the top of the bar, low is the bottom, volume is non-negative.
func (b Bar) Valid() bool {
	if b.Volume < 0 {
		return false
	}
	if b.High < b.Open || b.High < b.Close || b.High < b.Low {
		return false
	}
	if b.Low > b.Open || b.Low > b.Close {
		return false
	}
	return true
}

// TypicalPrice returns (high+low+close)/3.
func (b Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// Series is a time-ordered OHLCV history for one symbol and interval.
// Indicator functions only ever read it; nothing mutates a Series in place.
type Series struct {
	bars []Bar
}

// NewSeries builds a Series from raw bars: sorts ascending by timestamp,
// drops duplicate timestamps (first occurrence wins) and bars that fail
// sanity checks. Malformed input degrades, it never errors.
func NewSeries(bars []Bar) *Series {
	kept := make([]Bar, 0, len(bars))
	for _, b := range bars {
		if b.Valid() {
			kept = append(kept, b)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Time.Before(kept[j].Time) })

	deduped := kept[:0]
	for i, b := range kept {
		if i > 0 && b.Time.Equal(kept[i-1].Time) {
			continue
		}
		deduped = append(deduped, b)
	}
	return &Series{bars: deduped}
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i (0 is oldest).
func (s *Series) Bar(i int) Bar { return s.bars[i] }

// Last returns the most recent bar. Only valid when Len() > 0.
func (s *Series) Last() Bar { return s.bars[len(s.bars)-1] }

// LastClose returns the most recent close, or 0 for an empty series.
func (s *Series) LastClose() float64 {
	if len(s.bars) == 0 {
		return 0
	}
	return s.bars[len(s.bars)-1].Close
}

// Closes returns a copy of all close prices, oldest first.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}
