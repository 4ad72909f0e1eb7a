package engine

import (
	"log"
	"time"

	"QuantSentinel/internal/model"
)

// Upstream row shapes the engine tolerates:
//
//	standard (12 cols): [ts, open, high, low, close, volume, close_time,
//	                     quote_volume, trades, taker_buy_base, taker_buy_quote, ignore]
//	compact   (6 cols): [ts, volume, close, high, low, open]
//
// Anything else is parsed best-effort by position as [ts, o, h, l, c, v].
const (
	standardRowLen = 12
	compactRowLen  = 6
)

// normalizeRows reconstructs a valid Series from whatever row shape the
// upstream returned. When nothing parsable survives, it falls back to a
// single synthetic bar built from the live price widened ±1%, so
// downstream indicator calls never see a malformed Series.
func normalizeRows(rows []Row, livePrice float64, now time.Time) *model.Series {
	bars := make([]model.Bar, 0, len(rows))
	for _, row := range rows {
		if bar, ok := parseRow(row); ok {
			bars = append(bars, bar)
		}
	}

	series := model.NewSeries(bars)
	if series.Len() == 0 {
		log.Printf("[WARN] no parsable kline rows, falling back to synthetic bar")
		return model.NewSeries([]model.Bar{syntheticBar(livePrice, now)})
	}
	return series
}

func parseRow(row Row) (model.Bar, bool) {
	switch {
	case len(row) >= standardRowLen:
		return model.Bar{
			Time:   rowTime(row[0]),
			Open:   row[1],
			High:   row[2],
			Low:    row[3],
			Close:  row[4],
			Volume: row[5],
		}, true
	case len(row) == compactRowLen:
		return model.Bar{
			Time:   rowTime(row[0]),
			Open:   row[5],
			High:   row[3],
			Low:    row[4],
			Close:  row[2],
			Volume: row[1],
		}, true
	case len(row) >= 6:
		return model.Bar{
			Time:   rowTime(row[0]),
			Open:   row[1],
			High:   row[2],
			Low:    row[3],
			Close:  row[4],
			Volume: row[5],
		}, true
	default:
		return model.Bar{}, false
	}
}

// rowTime interprets a numeric timestamp as milliseconds when it is large
// enough, seconds otherwise.
func rowTime(ts float64) time.Time {
	if ts >= 1e12 {
		return time.UnixMilli(int64(ts))
	}
	return time.Unix(int64(ts), 0)
}

// syntheticBar builds the degraded single-bar series around a live price.
func syntheticBar(price float64, now time.Time) model.Bar {
	return model.Bar{
		Time:   now,
		Open:   price,
		High:   price * 1.01,
		Low:    price * 0.99,
		Close:  price,
		Volume: 0,
	}
}
