// Package market classifies trading symbols into market kinds and carries
// the per-market indicator policy (minimum sample thresholds, which
// indicator groups apply).
package market

import "strings"

// Kind identifies the market a symbol trades on.
type Kind string

const (
	Crypto      Kind = "crypto"
	USEquity    Kind = "us_equity"
	ChinaEquity Kind = "china_equity"
)

// Profile describes how the engine treats a market kind.
type Profile struct {
	Kind Kind

	// MinBars is the absolute minimum history below which no report is produced.
	MinBars int

	// HasFundingRate is true where perpetual-futures funding applies.
	// Equity markets pin the indicator to 0.
	HasFundingRate bool

	// HasNetflow is true where the exchange-netflow proxy applies.
	HasNetflow bool

	// HasFundamentals is true where a daily fundamentals snapshot is merged
	// into the report (China A-shares).
	HasFundamentals bool
}

var profiles = map[Kind]Profile{
	Crypto:      {Kind: Crypto, MinBars: 14, HasFundingRate: true, HasNetflow: true},
	USEquity:    {Kind: USEquity, MinBars: 14},
	ChinaEquity: {Kind: ChinaEquity, MinBars: 14, HasFundamentals: true},
}

// ProfileFor returns the policy profile for a market kind.
func ProfileFor(kind Kind) Profile { return profiles[kind] }

// Classify maps a symbol string to a market kind. Rules are checked in
// order, first match wins:
//
//  1. 6-digit numeric code, or a .SZ/.SH region suffix → China A-share
//  2. pure letters not ending in USDT → US equity
//  3. anything else → crypto
//
// This is a shape heuristic, not a registry lookup; short all-letter
// tickers that coincide with a crypto base resolve to US equity. Callers
// that know the market should pass it explicitly (see ClassifyWithHint).
func Classify(symbol string) Kind {
	s := strings.ToUpper(strings.TrimSpace(symbol))

	if isChinaCode(s) {
		return ChinaEquity
	}
	if isAlpha(s) && !strings.HasSuffix(s, "USDT") {
		return USEquity
	}
	return Crypto
}

// ClassifyWithHint returns the caller-supplied market when given, falling
// back to the symbol-shape heuristic. The hint is authoritative.
func ClassifyWithHint(symbol string, hint Kind) Kind {
	if _, ok := profiles[hint]; ok {
		return hint
	}
	return Classify(symbol)
}

func isChinaCode(s string) bool {
	if strings.HasSuffix(s, ".SZ") || strings.HasSuffix(s, ".SH") {
		return true
	}
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
