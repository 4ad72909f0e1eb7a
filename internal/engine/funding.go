package engine

import "log"

// DefaultFundingRate applies to symbols without a configured default.
const DefaultFundingRate = 0.0001

// DefaultFundingRates is the built-in per-symbol funding-rate default
// table, used when no override is injected via configuration.
var DefaultFundingRates = map[string]float64{
	"BTCUSDT":  0.0001,
	"ETHUSDT":  0.00015,
	"SOLUSDT":  0.0002,
	"DOGEUSDT": 0.0003,
	"XRPUSDT":  0.00025,
}

// FundingResolver resolves a perpetual-futures funding rate through a
// fallback chain: live rate → predicted (indicative) rate → mean of the
// last non-zero historical observations → per-symbol default table.
type FundingResolver struct {
	source   FundingSource
	defaults map[string]float64

	// historyDepth bounds the historical-rate fallback window.
	historyDepth int
}

// NewFundingResolver builds a resolver around a funding source. The
// defaults map overrides the built-in table; pass nil to keep it. A nil
// source skips the live steps and resolves straight from the table.
func NewFundingResolver(source FundingSource, defaults map[string]float64) *FundingResolver {
	table := defaults
	if table == nil {
		table = DefaultFundingRates
	}
	return &FundingResolver{source: source, defaults: table, historyDepth: 10}
}

// Resolve walks the fallback chain and always returns a usable rate.
// Collaborator errors advance the chain; they never propagate.
func (r *FundingResolver) Resolve(symbol string) float64 {
	if r.source == nil {
		return r.defaultFor(symbol)
	}

	rate, err := r.source.FundingRate(symbol)
	if err != nil {
		log.Printf("[WARN] funding rate for %s: %v", symbol, err)
		rate = 0
	}

	if rate == 0 {
		predicted, err := r.source.PredictedFundingRate(symbol)
		if err != nil {
			log.Printf("[WARN] predicted funding rate for %s: %v", symbol, err)
		} else if predicted != 0 {
			rate = predicted
		}
	}

	if rate == 0 {
		history, err := r.source.FundingRateHistory(symbol, r.historyDepth)
		if err != nil {
			log.Printf("[WARN] funding rate history for %s: %v", symbol, err)
		} else {
			sum, count := 0.0, 0
			for _, h := range history {
				if h != 0 {
					sum += h
					count++
				}
			}
			if count > 0 {
				rate = sum / float64(count)
			}
		}
	}

	if rate == 0 {
		rate = r.defaultFor(symbol)
	}
	return rate
}

func (r *FundingResolver) defaultFor(symbol string) float64 {
	if v, ok := r.defaults[symbol]; ok {
		return v
	}
	return DefaultFundingRate
}
