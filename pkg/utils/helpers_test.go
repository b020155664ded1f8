package utils

import "testing"

func TestRoundTo(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{28.47, 1, 28.5},
		{28.44, 1, 28.4},
		{30.0, 1, 30.0},
		{1.2345, 2, 1.23},
		{-0.15, 1, -0.2},
	}

	for _, tt := range tests {
		if got := RoundTo(tt.value, tt.places); got != tt.want {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
		}
	}
}
