package calculator

// WindowTier pairs a minimum sample count with the computation window
// used once that much history is available.
type WindowTier struct {
	MinSamples int
	Window     int
}

// ValuationWindowTiers is the ordered window ladder for NUPL and the
// Mayer Multiple: the first tier whose minimum is satisfied wins.
var ValuationWindowTiers = []WindowTier{
	{MinSamples: 200, Window: 200},
	{MinSamples: 100, Window: 100},
	{MinSamples: 50, Window: 50},
}

// SelectWindow returns the window of the first tier satisfied by the
// sample count. The second return is false when no tier qualifies, in
// which case callers fall back to the indicator's documented default.
func SelectWindow(samples int, tiers []WindowTier) (int, bool) {
	for _, t := range tiers {
		if samples >= t.MinSamples {
			return t.Window, true
		}
	}
	return 0, false
}
