package tabular

import (
	"fmt"
	"math"
	"sort"

	"github.com/samuelfneumann/tabular/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Physical bounds (+/-) that observation features are clipped to
// before discretization. These are fixed by the cartpole domain and do
// not depend on observed data.
const (
	PositionBound        float64 = 4.0
	AngleBound           float64 = math.Pi / 6 // 30 degrees
	SpeedBound           float64 = 15.0
	AngularVelocityBound float64 = 15.0
)

// Bounds holds the clipping bound of each State feature, in State order
var Bounds = [StateDims]float64{
	PositionBound,
	AngleBound,
	SpeedBound,
	AngularVelocityBound,
}

// Discretizer maps continuous observations to States. Each feature i
// is clipped to [-Bounds[i], Bounds[i]] and bucketized against
// bins[i] evenly spaced edges spanning that interval, inclusive.
//
// A value lying exactly on an interior edge k maps to bucket k, and a
// value between edges maps to the number of edges below it. A value
// clipped to the lower bound maps to bucket 0, while a value at or
// above the upper bound maps to bucket bins[i]. Bucket indices for
// feature i are therefore in [0, bins[i]].
type Discretizer struct {
	bins   []int
	bounds [StateDims]r1.Interval
	edges  [StateDims][]float64
}

// NewDiscretizer returns a new Discretizer using bins[i] edges for
// feature i. Exactly StateDims positive bin counts must be given.
func NewDiscretizer(bins []int) (*Discretizer, error) {
	if len(bins) != StateDims {
		return nil, fmt.Errorf("newDiscretizer: expected %v bin counts but "+
			"got %v", StateDims, len(bins))
	}

	d := &Discretizer{bins: append([]int(nil), bins...)}
	for i, n := range bins {
		if n < 1 {
			return nil, fmt.Errorf("newDiscretizer: bin count %v for "+
				"feature %v must be positive", n, i)
		}
		d.bounds[i] = r1.Interval{Min: -Bounds[i], Max: Bounds[i]}
		d.edges[i] = floatutils.Linspace(d.bounds[i], n)
	}
	return d, nil
}

// Discretize returns the State of an observation. The observation must
// have StateDims features ordered as the State is, none of which may be
// NaN. Infinite features are clipped like any other out-of-bounds value.
func (d *Discretizer) Discretize(obs mat.Vector) State {
	if obs.Len() != StateDims {
		panic(fmt.Sprintf("discretize: observation has %v features, "+
			"expected %v", obs.Len(), StateDims))
	}

	var s State
	for i := range s {
		value := obs.AtVec(i)
		if math.IsNaN(value) {
			panic(fmt.Sprintf("discretize: feature %v is NaN", i))
		}
		clipped := floatutils.ClipInterval(value, d.bounds[i])
		s[i] = bucketize(clipped, d.edges[i], d.bounds[i])
	}
	return s
}

// bucketize returns the bucket of a clipped value
func bucketize(value float64, edges []float64, bounds r1.Interval) int {
	if value >= bounds.Max {
		return len(edges)
	}
	// Index of the first edge >= value, i.e. the number of edges < value
	return sort.SearchFloat64s(edges, value)
}

// Bins returns the number of bin edges used for each feature
func (d *Discretizer) Bins() []int {
	return append([]int(nil), d.bins...)
}

// Contains returns whether s could have been produced by the
// Discretizer, that is whether each component i is in [0, bins[i]]
func (d *Discretizer) Contains(s State) bool {
	for i, v := range s {
		if v < 0 || v > d.bins[i] {
			return false
		}
	}
	return true
}
