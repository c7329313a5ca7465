package floatutils

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, -1, 1, -1},
		{3, -1, 1, 1},
		{1, 1, 1, 1},
	}

	for _, test := range tests {
		if got := Clip(test.value, test.min, test.max); got != test.want {
			t.Errorf("clip(%v, %v, %v) = %v want %v", test.value, test.min,
				test.max, got, test.want)
		}
		interval := r1.Interval{Min: test.min, Max: test.max}
		if got := ClipInterval(test.value, interval); got != test.want {
			t.Errorf("clipInterval(%v, %v) = %v want %v", test.value,
				interval, got, test.want)
		}
	}
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		interval r1.Interval
		n        int
		want     []float64
	}{
		{r1.Interval{Min: -4, Max: 4}, 5, []float64{-4, -2, 0, 2, 4}},
		{r1.Interval{Min: 0, Max: 1}, 2, []float64{0, 1}},
		{r1.Interval{Min: -1, Max: 1}, 1, []float64{-1}},
		{r1.Interval{Min: -1, Max: 1}, 0, nil},
	}

	for _, test := range tests {
		got := Linspace(test.interval, test.n)
		if len(got) != len(test.want) {
			t.Errorf("linspace(%v, %v) has length %v want %v", test.interval,
				test.n, len(got), len(test.want))
			continue
		}
		if !floats.EqualApprox(got, test.want, 1e-12) {
			t.Errorf("linspace(%v, %v) = %v want %v", test.interval, test.n,
				got, test.want)
		}
	}
}
