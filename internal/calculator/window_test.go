package calculator

import "testing"

func TestSelectWindow(t *testing.T) {
	tests := []struct {
		samples int
		want    int
		ok      bool
	}{
		{300, 200, true},
		{200, 200, true},
		{199, 100, true},
		{100, 100, true},
		{99, 50, true},
		{50, 50, true},
		{49, 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		got, ok := SelectWindow(tt.samples, ValuationWindowTiers)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SelectWindow(%d) = (%d, %v), want (%d, %v)", tt.samples, got, ok, tt.want, tt.ok)
		}
	}
}
