// Package engine implements the indicator orchestrator: given a symbol,
// an interval and a history budget, it obtains a price series from the
// injected data-source collaborator, decides which indicators can be
// computed at full fidelity, and assembles a complete indicator report.
//
// The engine is synchronous and stateless: one ComputeReport call makes a
// bounded number of sequential collaborator reads followed by pure
// in-memory numeric work, so concurrent invocations need no coordination
// and a call may be safely retried by the caller.
package engine

import (
	"log"
	"time"

	"QuantSentinel/internal/calculator"
	"QuantSentinel/internal/market"
	"QuantSentinel/internal/model"
)

const (
	// DefaultInterval is used when the caller passes an empty interval.
	DefaultInterval = "1d"

	// DefaultSampleBudget is used when the caller passes no budget.
	DefaultSampleBudget = 1000

	// reducedBudget is requested first instead of the full budget, to
	// bound cost on freshly listed assets.
	reducedBudget = 100

	// retryBudget is the smaller request made when the first fetch
	// returns fewer than retryThreshold rows.
	retryBudget    = 50
	retryThreshold = 20

	// minBars is the absolute minimum history; below it no report is
	// produced.
	minBars = 14

	netflowPeriod = 30
)

// Engine computes indicator reports. Construct with New; the zero value
// is not usable.
type Engine struct {
	crypto  CryptoSource
	equity  EquitySource
	funding *FundingResolver
}

// New creates an Engine around the injected data sources. Either source
// may be nil when the corresponding market is not served; funding may be
// nil to pin crypto funding rates to 0.
func New(crypto CryptoSource, equity EquitySource, funding *FundingResolver) *Engine {
	return &Engine{crypto: crypto, equity: equity, funding: funding}
}

// ComputeReport classifies the symbol by shape and produces its indicator
// report. See ComputeReportAs for the failure contract.
func (e *Engine) ComputeReport(symbol, interval string, sampleBudget int) (*model.Report, error) {
	return e.ComputeReportAs(symbol, interval, sampleBudget, "")
}

// ComputeReportAs is ComputeReport with an authoritative market hint;
// pass an empty hint to fall back to the symbol-shape heuristic.
//
// On success the report contains every indicator key, degraded to its
// documented default where history was short. Terminal failures are
// *Error values with kind data_unavailable, insufficient_history or
// computation_failed; partial reports are never returned.
func (e *Engine) ComputeReportAs(symbol, interval string, sampleBudget int, hint market.Kind) (report *model.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] indicator assembly panicked for %s: %v", symbol, r)
			report = nil
			err = failComputation("indicator computation failed for %s", symbol)
		}
	}()

	if interval == "" {
		interval = DefaultInterval
	}
	if sampleBudget <= 0 {
		sampleBudget = DefaultSampleBudget
	}

	kind := market.ClassifyWithHint(symbol, hint)
	profile := market.ProfileFor(kind)
	log.Printf("[INFO] computing report for %s (market=%s interval=%s)", symbol, kind, interval)

	if kind == market.Crypto {
		return e.cryptoReport(symbol, interval, sampleBudget, profile)
	}
	return e.equityReport(symbol, interval, sampleBudget, profile)
}

func (e *Engine) cryptoReport(symbol, interval string, sampleBudget int, profile market.Profile) (*model.Report, error) {
	if e.crypto == nil {
		return nil, failDataUnavailable("no crypto data source configured")
	}

	// Reachability probe doubles as a symbol-existence check.
	price, err := e.crypto.RealtimePrice(symbol)
	if err != nil {
		return nil, failDataUnavailable("realtime price for %s: %v", symbol, err)
	}
	if price <= 0 {
		return nil, failDataUnavailable("no realtime price for %s", symbol)
	}

	budget := reducedBudget
	if sampleBudget < budget {
		budget = sampleBudget
	}
	start := time.Now().Add(-time.Duration(budget) * intervalDuration(interval))
	rows, err := e.crypto.HistoricalKlines(symbol, interval, start)
	if err != nil {
		log.Printf("[WARN] historical klines for %s: %v", symbol, err)
		rows = nil
	}

	if len(rows) < retryThreshold {
		log.Printf("[WARN] short history for %s (%d rows), retrying with budget %d", symbol, len(rows), retryBudget)
		rows, err = e.crypto.Klines(symbol, interval, retryBudget)
		if err != nil {
			log.Printf("[WARN] klines for %s: %v", symbol, err)
			rows = nil
		}
	}
	if len(rows) < minBars {
		return nil, failInsufficientHistory("only %d bars available for %s, need %d", len(rows), symbol, minBars)
	}

	series := normalizeRows(rows, price, time.Now())
	indicators := e.assemble(series, price, symbol, profile)

	return finishReport(symbol, interval, profile, indicators), nil
}

func (e *Engine) equityReport(symbol, interval string, sampleBudget int, profile market.Profile) (*model.Report, error) {
	if e.equity == nil {
		return nil, failDataUnavailable("no equity data source configured")
	}

	code := e.equity.FormatSymbol(symbol)
	price, err := e.equity.RealtimePrice(code)
	if err != nil {
		return nil, failDataUnavailable("realtime price for %s: %v", code, err)
	}
	if price <= 0 {
		return nil, failDataUnavailable("no realtime price for %s", code)
	}

	budget := reducedBudget
	if sampleBudget < budget {
		budget = sampleBudget
	}
	end := time.Now()
	bars, err := e.equity.DailyBars(code, end.AddDate(0, 0, -budget), end, budget)
	if err != nil {
		log.Printf("[WARN] daily bars for %s: %v", code, err)
		bars = nil
	}

	if len(bars) < retryThreshold {
		log.Printf("[WARN] short history for %s (%d bars), retrying with budget %d", code, len(bars), retryBudget)
		bars, err = e.equity.DailyBars(code, end.AddDate(0, 0, -retryBudget), end, retryBudget)
		if err != nil {
			log.Printf("[WARN] daily bars for %s: %v", code, err)
			bars = nil
		}
	}
	// Unlike the crypto path, equities are snapshot-friendly: any
	// non-empty daily history degrades tier by tier instead of failing.
	if len(bars) == 0 {
		return nil, failInsufficientHistory("no daily bars available for %s", code)
	}

	series := model.NewSeries(bars)
	if series.Len() == 0 {
		log.Printf("[WARN] no valid daily bars for %s, falling back to synthetic bar", code)
		series = model.NewSeries([]model.Bar{syntheticBar(price, end)})
	}

	indicators := e.assemble(series, price, code, profile)
	if profile.HasFundamentals {
		e.mergeFundamentals(code, indicators)
	}

	return finishReport(code, interval, profile, indicators), nil
}

// assemble computes every indicator for the series, gating each tier on
// the available sample count. Every key is always present; a tier that
// lacks enough data degrades to its documented default value.
func (e *Engine) assemble(series *model.Series, price float64, symbol string, profile market.Profile) map[string]model.IndicatorValue {
	n := series.Len()
	indicators := make(map[string]model.IndicatorValue, 16)

	// Basic indicators need 14 bars.
	if n >= 14 {
		if rsi, err := calculator.CalculateRSI(series, 14); err != nil {
			log.Printf("[WARN] RSI for %s: %v, defaulting to %.0f", symbol, err, calculator.DefaultRSI)
			indicators["RSI"] = model.Scalar(calculator.DefaultRSI)
		} else {
			indicators["RSI"] = model.Scalar(rsi)
		}

		macd, err := calculator.CalculateMACD(series, 12, 26, 9)
		if err != nil {
			log.Printf("[WARN] MACD for %s: %v", symbol, err)
			macd = calculator.MACDResult{}
		}
		indicators["MACD"] = macdValue(macd)

		bands, err := calculator.CalculateBollingerBands(series, 20, 2)
		if err != nil {
			log.Printf("[WARN] Bollinger bands for %s: %v", symbol, err)
			bands = calculator.DefaultBands(price)
		}
		indicators["BollingerBands"] = bandsValue(bands)

		if bias, err := calculator.CalculateBIAS(series, 6); err != nil {
			log.Printf("[WARN] BIAS for %s: %v", symbol, err)
			indicators["BIAS"] = model.Scalar(0.0)
		} else {
			indicators["BIAS"] = model.Scalar(bias)
		}
	} else {
		log.Printf("[WARN] only %d bars for %s, using defaults for basic indicators", n, symbol)
		indicators["RSI"] = model.Scalar(calculator.DefaultRSI)
		indicators["MACD"] = macdValue(calculator.MACDResult{})
		indicators["BollingerBands"] = bandsValue(calculator.DefaultBands(price))
		indicators["BIAS"] = model.Scalar(0.0)
	}

	if psy, err := calculator.CalculatePSY(series, 12); err != nil || n < 12 {
		indicators["PSY"] = model.Scalar(calculator.DefaultPSY)
	} else {
		indicators["PSY"] = model.Scalar(psy)
	}

	if n >= 14 {
		dmi, err := calculator.CalculateDMI(series, 14)
		if err != nil {
			log.Printf("[WARN] DMI for %s: %v", symbol, err)
			dmi = calculator.DMIResult{}
		}
		indicators["DMI"] = dmiValue(dmi)
	} else {
		indicators["DMI"] = dmiValue(calculator.DMIResult{PlusDI: 25.0, MinusDI: 25.0, ADX: 20.0})
	}

	if n >= 20 {
		indicators["VWAP"] = model.Scalar(calculator.CalculateVWAP(series))
	} else {
		indicators["VWAP"] = model.Scalar(price)
	}

	// Funding rate and netflow do not depend on deep history; equity
	// markets pin both to zero.
	if profile.HasFundingRate && e.funding != nil {
		indicators["FundingRate"] = model.Scalar(e.funding.Resolve(symbol))
	} else {
		indicators["FundingRate"] = model.Scalar(0.0)
	}
	indicators["ExchangeNetflow"] = model.Scalar(0.0)
	if profile.HasNetflow {
		if netflow, err := calculator.CalculateExchangeNetflow(series, netflowPeriod); err != nil {
			log.Printf("[WARN] exchange netflow for %s: %v", symbol, err)
		} else {
			indicators["ExchangeNetflow"] = model.Scalar(netflow)
		}
	}

	// Valuation indicators pick the largest window the history supports.
	if window, ok := calculator.SelectWindow(n, calculator.ValuationWindowTiers); ok {
		if nupl, err := calculator.CalculateNUPL(series, window); err != nil {
			log.Printf("[WARN] NUPL for %s: %v", symbol, err)
			indicators["NUPL"] = model.Scalar(0.0)
		} else {
			indicators["NUPL"] = model.Scalar(nupl)
		}
		if mayer, err := calculator.CalculateMayerMultiple(series, window); err != nil {
			log.Printf("[WARN] Mayer multiple for %s: %v", symbol, err)
			indicators["MayerMultiple"] = model.Scalar(calculator.DefaultMayerMultiple)
		} else {
			indicators["MayerMultiple"] = model.Scalar(mayer)
		}
	} else {
		log.Printf("[WARN] only %d bars for %s, using defaults for valuation indicators", n, symbol)
		indicators["NUPL"] = model.Scalar(0.0)
		indicators["MayerMultiple"] = model.Scalar(calculator.DefaultMayerMultiple)
	}

	return indicators
}

// mergeFundamentals adds the China A-share fundamentals snapshot. Missing
// snapshots degrade to absent keys being zero-filled, never to failure.
func (e *Engine) mergeFundamentals(code string, indicators map[string]model.IndicatorValue) {
	fund, err := e.equity.DailyBasic(code)
	if err != nil {
		log.Printf("[WARN] fundamentals for %s: %v", code, err)
	}
	if fund == nil {
		fund = &model.Fundamentals{}
	}

	indicators["TurnoverRate"] = model.Scalar(fund.TurnoverRate)
	indicators["VolumeRatio"] = model.Scalar(fund.VolumeRatio)
	indicators["PE"] = model.Scalar(fund.PE)
	indicators["PE_TTM"] = model.Scalar(fund.PETTM)
	indicators["PB"] = model.Scalar(fund.PB)
	indicators["PS"] = model.Scalar(fund.PS)
	indicators["PS_TTM"] = model.Scalar(fund.PSTTM)
	indicators["DividendYield"] = model.Scalar(fund.DividendYield)
	indicators["DividendYield_TTM"] = model.Scalar(fund.DividendYieldTTM)
	indicators["TotalMarketValue"] = model.Scalar(fund.TotalMarketValue)
	indicators["CircMarketValue"] = model.Scalar(fund.CircMarketValue)
	indicators["TotalShare"] = model.Scalar(fund.TotalShare)
	indicators["FloatShare"] = model.Scalar(fund.FloatShare)
}

func finishReport(symbol, interval string, profile market.Profile, indicators map[string]model.IndicatorValue) *model.Report {
	return &model.Report{
		Symbol:     symbol,
		Interval:   interval,
		Market:     string(profile.Kind),
		Timestamp:  time.Now(),
		Indicators: calculator.Sanitize(indicators),
	}
}

func macdValue(m calculator.MACDResult) model.IndicatorValue {
	return model.Composite(map[string]float64{
		"line":      m.Line,
		"signal":    m.Signal,
		"histogram": m.Histogram,
	})
}

func bandsValue(b calculator.Bands) model.IndicatorValue {
	return model.Composite(map[string]float64{
		"upper":  b.Upper,
		"middle": b.Middle,
		"lower":  b.Lower,
	})
}

func dmiValue(d calculator.DMIResult) model.IndicatorValue {
	return model.Composite(map[string]float64{
		"plus_di":  d.PlusDI,
		"minus_di": d.MinusDI,
		"adx":      d.ADX,
	})
}

// intervalDuration maps a kline interval token to its wall duration,
// defaulting to one day for unknown tokens.
func intervalDuration(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1w":
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
