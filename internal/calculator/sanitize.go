package calculator

import "QuantSentinel/internal/model"

// memberBounds is the per-indicator clamp range applied to composite
// members in the final sanitize pass.
type memberBounds struct {
	lo, hi float64
}

var compositeBounds = map[string]memberBounds{
	"MACD":           {lo: -10000, hi: 10000},
	"BollingerBands": {lo: 0, hi: 1e6},
	"DMI":            {lo: 0, hi: 100},
}

// Sanitize runs the final validity pass over an assembled indicator map:
// every non-finite leaf is replaced with 0.0, and composite members are
// clamped to their documented bounds. Returns a fresh map; the input is
// not modified.
func Sanitize(indicators map[string]model.IndicatorValue) map[string]model.IndicatorValue {
	out := make(map[string]model.IndicatorValue, len(indicators))
	for name, value := range indicators {
		if !value.IsComposite() {
			v := value.Scalar()
			if !finite(v) {
				v = 0.0
			}
			out[name] = model.Scalar(v)
			continue
		}

		fields := value.Fields()
		for k, v := range fields {
			if !finite(v) {
				v = 0.0
			}
			if b, ok := compositeBounds[name]; ok {
				v = clamp(v, b.lo, b.hi)
			}
			fields[k] = v
		}
		out[name] = model.Composite(fields)
	}
	return out
}
