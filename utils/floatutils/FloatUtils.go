// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// Linspace returns n evenly spaced values over the closed interval.
// The first and last values are exactly interval.Min and interval.Max.
// If n == 1, the single value returned is interval.Min.
func Linspace(interval r1.Interval, n int) []float64 {
	if n <= 0 {
		return nil
	}

	values := make([]float64, n)
	values[0] = interval.Min
	if n == 1 {
		return values
	}

	step := (interval.Max - interval.Min) / float64(n-1)
	for i := 1; i < n-1; i++ {
		values[i] = interval.Min + float64(i)*step
	}
	values[n-1] = interval.Max

	return values
}
