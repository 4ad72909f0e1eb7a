package calculator

import "testing"

func TestCalculateDMI_Uptrend(t *testing.T) {
	series := seriesOf(linearCloses(300, 100, 400)...)
	res, err := CalculateDMI(series, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PlusDI <= 0 {
		t.Errorf("expected positive +DI in uptrend, got %.2f", res.PlusDI)
	}
	if res.MinusDI != 0 {
		t.Errorf("expected zero -DI in a one-way uptrend, got %.2f", res.MinusDI)
	}
	// With -DI pinned at zero every DX reads 100, so ADX saturates.
	if !approx(res.ADX, 100, 1e-9) {
		t.Errorf("expected ADX 100, got %.2f", res.ADX)
	}
}

func TestCalculateDMI_ExactPeriod(t *testing.T) {
	// 14 bars: DIs are computable, ADX still needs 2·period−1 bars.
	series := seriesOf(linearCloses(14, 100, 113)...)
	res, err := CalculateDMI(series, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PlusDI <= 0 {
		t.Errorf("expected computable +DI at exactly 14 bars, got %.2f", res.PlusDI)
	}
	if res.ADX != 0.0 {
		t.Errorf("expected ADX default 0.0 at 14 bars, got %.2f", res.ADX)
	}
}

func TestCalculateDMI_InsufficientData(t *testing.T) {
	series := seriesOf(linearCloses(10, 100, 110)...)
	res, err := CalculateDMI(series, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != (DMIResult{}) {
		t.Errorf("expected zero result below the period, got %+v", res)
	}
}

func TestCalculateDMI_Bounds(t *testing.T) {
	closes := []float64{100, 120, 90, 130, 85, 140, 80, 150, 75, 160,
		70, 170, 65, 180, 60, 190, 55, 200, 50, 210, 45, 220, 40, 230,
		35, 240, 30, 250, 25, 260}
	res, err := CalculateDMI(seriesOf(closes...), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, v := range map[string]float64{"+DI": res.PlusDI, "-DI": res.MinusDI, "ADX": res.ADX} {
		if v < 0 || v > 100 {
			t.Errorf("%s out of [0,100]: %.2f", name, v)
		}
	}
}

func TestCalculateDMI_InvalidPeriod(t *testing.T) {
	if _, err := CalculateDMI(seriesOf(100, 101), 0); err == nil {
		t.Error("expected error for zero period")
	}
}
