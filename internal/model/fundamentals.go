package model

// Fundamentals is the most-recent trading-day snapshot of China A-share
// valuation metrics. Missing upstream fields coerce to 0.
type Fundamentals struct {
	TurnoverRate     float64
	VolumeRatio      float64
	PE               float64
	PETTM            float64
	PB               float64
	PS               float64
	PSTTM            float64
	DividendYield    float64
	DividendYieldTTM float64
	TotalMarketValue float64
	CircMarketValue  float64
	TotalShare       float64
	FloatShare       float64
}
