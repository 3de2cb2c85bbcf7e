package renderer

import "testing"

func TestGlowIntensity(t *testing.T) {
	tests := []struct {
		level, max, want float64
	}{
		{1, 9.5, 0},
		{9.5, 9.5, 1},
		{5.25, 9.5, 0.5},
		{20, 9.5, 1},
		{3, 1, 0},
	}
	for _, tt := range tests {
		if got := GlowIntensity(tt.level, tt.max); got != tt.want {
			t.Errorf("GlowIntensity(%v, %v) = %v, want %v", tt.level, tt.max, got, tt.want)
		}
	}
}
