package environment

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"
)

// Spec implements an environment specification, which tells the
// dimensionality and bounds of an action or observation in an
// environment
type Spec struct {
	Bounds []r1.Interval
}

// NewSpec constructs a new environment specification with one bound
// per dimension
func NewSpec(bounds ...r1.Interval) Spec {
	for i, b := range bounds {
		if b.Min > b.Max {
			panic(fmt.Sprintf("newSpec: bound %v has min %v > max %v", i,
				b.Min, b.Max))
		}
	}
	return Spec{bounds}
}

// Len returns the dimensionality described by the Spec
func (s Spec) Len() int {
	return len(s.Bounds)
}
