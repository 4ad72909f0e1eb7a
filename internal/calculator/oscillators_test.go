package calculator

import "testing"

func TestCalculateBIAS(t *testing.T) {
	// Last close 10% above a flat history: SMA(6) = (5·100 + 110)/6.
	closes := append(flatCloses(19, 100), 110)
	series := seriesOf(closes...)
	bias, err := CalculateBIAS(series, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ma := 610.0 / 6.0
	want := (110 - ma) / ma * 100
	if !approx(bias, want, 1e-9) {
		t.Errorf("expected BIAS %.4f, got %.4f", want, bias)
	}
}

func TestCalculateBIAS_FlatSeries(t *testing.T) {
	series := seriesOf(flatCloses(20, 100)...)
	bias, err := CalculateBIAS(series, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bias != 0.0 {
		t.Errorf("flat series should have zero deviation, got %.4f", bias)
	}
}

func TestCalculateBIAS_InsufficientData(t *testing.T) {
	series := seriesOf(100, 110, 120)
	bias, err := CalculateBIAS(series, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bias != 0.0 {
		t.Errorf("expected default 0.0 for short history, got %.4f", bias)
	}
}

func TestCalculatePSY(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"all up", linearCloses(20, 100, 200), 100.0},
		{"all down", linearCloses(20, 200, 100), 0.0},
		{"short history", linearCloses(5, 100, 110), DefaultPSY},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			psy, err := CalculatePSY(seriesOf(tt.closes...), 12)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if psy != tt.want {
				t.Errorf("expected PSY %.1f, got %.1f", tt.want, psy)
			}
		})
	}
}

func TestCalculatePSY_Mixed(t *testing.T) {
	// 6 up days out of 12 in the trailing window.
	closes := []float64{100, 101, 100, 101, 100, 101, 100, 101, 100, 101, 100, 101, 100}
	psy, err := CalculatePSY(seriesOf(closes...), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if psy != 50.0 {
		t.Errorf("expected 50%% up days, got %.1f", psy)
	}
}
