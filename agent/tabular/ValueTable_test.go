package tabular

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestValueTableZeroDefault(t *testing.T) {
	q := NewValueTable(3)
	s := State{1, 2, 3, 4}

	if got := q.At(s); !floats.Equal(got, []float64{0, 0, 0}) {
		t.Errorf("at: unseen state has values %v want zeros", got)
	}
	if q.Max(s) != 0 || q.Argmax(s) != 0 || q.Value(s, 2) != 0 {
		t.Errorf("unseen state should behave as a zero vector")
	}
	if q.Has(s) || q.Len() != 0 {
		t.Errorf("reading an unseen state should not store it")
	}

	// Mutating the returned copy must not affect the table
	values := q.At(s)
	values[0] = 10
	if q.Value(s, 0) != 0 || q.Has(s) {
		t.Errorf("at: returned vector aliases table storage")
	}
}

func TestValueTableUpdates(t *testing.T) {
	q := NewValueTable(3)
	s := State{0, 0, 0, 0}

	q.Add(s, 1, 0.5)
	q.Add(s, 1, 0.25)
	q.Set(s, 2, -1)

	if !q.Has(s) || q.Len() != 1 {
		t.Fatalf("writing a state should store it")
	}
	if got := q.At(s); !floats.Equal(got, []float64{0, 0.75, -1}) {
		t.Errorf("at: got %v want [0 0.75 -1]", got)
	}
	if q.Max(s) != 0.75 || q.Argmax(s) != 1 {
		t.Errorf("max/argmax: got (%v, %v) want (0.75, 1)", q.Max(s),
			q.Argmax(s))
	}
}

func TestValueTableArgmaxTies(t *testing.T) {
	q := NewValueTable(4)
	s := State{1, 1, 1, 1}
	q.Set(s, 1, 2)
	q.Set(s, 3, 2)

	if got := q.Argmax(s); got != 1 {
		t.Errorf("argmax: got %v want first maximum 1", got)
	}

	// All negative: the unvisited zero entries are maximal
	n := State{2, 2, 2, 2}
	q.Set(n, 0, -1)
	q.Set(n, 1, -2)
	if got := q.Argmax(n); got != 2 {
		t.Errorf("argmax: got %v want 2", got)
	}
	if got := q.Max(n); got != 0 {
		t.Errorf("max: got %v want 0", got)
	}
}

func TestValueTableMeanAndStates(t *testing.T) {
	q := NewValueTable(2)
	if q.Mean() != 0 {
		t.Errorf("mean: empty table should have mean 0")
	}

	q.Set(State{1, 0, 0, 0}, 0, 1)
	q.Set(State{0, 5, 0, 0}, 1, 3)

	if got := q.Mean(); got != 1 {
		t.Errorf("mean: got %v want 1", got)
	}

	states := q.States()
	want := []State{{0, 5, 0, 0}, {1, 0, 0, 0}}
	if len(states) != len(want) || states[0] != want[0] ||
		states[1] != want[1] {
		t.Errorf("states: got %v want %v", states, want)
	}
}

func TestCountTable(t *testing.T) {
	n := NewCountTable(2)
	s := State{1, 2, 3, 4}

	if n.Count(s, 0) != 0 || n.Has(s) {
		t.Errorf("unseen state should have zero counts and not be stored")
	}

	if got := n.Increment(s, 1); got != 1 {
		t.Errorf("increment: got %v want 1", got)
	}
	if got := n.Increment(s, 1); got != 2 {
		t.Errorf("increment: got %v want 2", got)
	}

	counts := n.At(s)
	if counts[0] != 0 || counts[1] != 2 {
		t.Errorf("at: got %v want [0 2]", counts)
	}
	if n.Len() != 1 || len(n.States()) != 1 {
		t.Errorf("len: got %v want 1", n.Len())
	}
}
