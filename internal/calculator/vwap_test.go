package calculator

import (
	"testing"
	"time"

	"QuantSentinel/internal/model"
)

func TestCalculateVWAP(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := model.NewSeries([]model.Bar{
		{Time: base, Open: 100, High: 100, Low: 100, Close: 100, Volume: 1},
		{Time: base.AddDate(0, 0, 1), Open: 200, High: 200, Low: 200, Close: 200, Volume: 3},
	})
	// Typical price equals the close when high == low == close.
	want := (100.0*1 + 200.0*3) / 4
	if got := CalculateVWAP(series); !approx(got, want, 1e-9) {
		t.Errorf("expected VWAP %.2f, got %.2f", want, got)
	}
}

func TestCalculateVWAP_ZeroVolume(t *testing.T) {
	series := seriesWithVolume(0, 100, 150, 120)
	if got := CalculateVWAP(series); got != 120 {
		t.Errorf("zero volume should fall back to last close, got %.2f", got)
	}
}

func TestCalculateVWAP_EmptySeries(t *testing.T) {
	if got := CalculateVWAP(seriesOf()); got != 0.0 {
		t.Errorf("expected 0.0 for empty series, got %.2f", got)
	}
}

func TestCalculateExchangeNetflow(t *testing.T) {
	// Constant traded value: the latest flow sits exactly on its average.
	series := seriesOf(flatCloses(35, 100)...)
	flow, err := CalculateExchangeNetflow(series, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow != 0.0 {
		t.Errorf("expected zero netflow for constant activity, got %.2f", flow)
	}
}

func TestCalculateExchangeNetflow_VolumeSpike(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, 35)
	for i := range bars {
		vol := 1000.0
		if i == len(bars)-1 {
			vol = 2000.0
		}
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: vol}
	}
	flow, err := CalculateExchangeNetflow(model.NewSeries(bars), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow <= 0 {
		t.Errorf("expected positive netflow on a volume spike, got %.2f", flow)
	}
	if flow > netflowBound {
		t.Errorf("netflow exceeds clamp: %.2f", flow)
	}
}

func TestCalculateExchangeNetflow_Clamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, 35)
	for i := range bars {
		vol := 1000.0
		if i == len(bars)-1 {
			vol = 1e9
		}
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: vol}
	}
	flow, err := CalculateExchangeNetflow(model.NewSeries(bars), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow != netflowBound {
		t.Errorf("expected clamp at %.0f, got %.2f", netflowBound, flow)
	}
}

func TestCalculateExchangeNetflow_InsufficientData(t *testing.T) {
	series := seriesOf(flatCloses(10, 100)...)
	flow, err := CalculateExchangeNetflow(series, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flow != 0.0 {
		t.Errorf("expected default 0.0 below the window, got %.2f", flow)
	}
}
