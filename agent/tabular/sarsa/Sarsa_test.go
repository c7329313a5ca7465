package sarsa

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func config() tabular.Config {
	return tabular.Config{
		Actions:        3,
		ActionRange:    r1.Interval{Min: -1, Max: 1},
		Bins:           []int{5, 5, 5, 5},
		LearningRate:   0.5,
		InitialEpsilon: 0.0,
		EpsilonDecay:   1.0,
		FinalEpsilon:   0.0,
		Discount:       0.9,
	}
}

var (
	lowest  = mat.NewVecDense(4, []float64{-10, -1, -100, -100})
	highest = mat.NewVecDense(4, []float64{10, 1, 100, 100})
)

func TestUpdateUsesNextAction(t *testing.T) {
	s, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	next := tabular.State{5, 5, 5, 5}
	s.Q().Set(next, 0, 2.0)
	s.Q().Set(next, 1, 10.0)

	// Bootstraps off Q(s', 0) = 2, not the max of 10
	// 0.5 * (1 + 0.9*2) = 1.4
	if err := s.Update(lowest, 2, 1.0, highest, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := s.Q().Value(tabular.State{}, 2)
	if !scalar.EqualWithinAbs(got, 1.4, 1e-12) {
		t.Errorf("update: got %v want 1.4", got)
	}
}

func TestUpdateMatchesQLearningWhenGreedy(t *testing.T) {
	s, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Update(lowest, 1, 1.0, lowest, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.Q().Value(tabular.State{}, 1); got != 0.5 {
		t.Errorf("update: got %v want 0.5", got)
	}
}

func TestUpdateIllegalAction(t *testing.T) {
	s, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		action, nextAction int
	}{
		{-1, 0},
		{3, 0},
		{0, -1},
		{0, 3},
	}
	for _, test := range tests {
		err := s.Update(lowest, test.action, 1.0, lowest, test.nextAction)
		if err == nil {
			t.Errorf("update: expected error for actions (%v, %v)",
				test.action, test.nextAction)
		}
	}
	if s.Q().Len() != 0 {
		t.Errorf("update: illegal action modified the table")
	}
}

func TestObserve(t *testing.T) {
	s, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}
	s.Q().Set(tabular.State{5, 5, 5, 5}, 1, 1.0)

	step := ts.New(ts.First, 0, lowest, 0)
	next := ts.New(ts.Last, 0.0, highest, 1)
	if err := s.Observe(ts.NewTransition(step, 0, next, 1)); err != nil {
		t.Fatalf("observe: %v", err)
	}
	// 0.5 * (0 + 0.9*1) = 0.45
	got := s.Q().Value(tabular.State{}, 0)
	if !scalar.EqualWithinAbs(got, 0.45, 1e-12) {
		t.Errorf("observe: got %v want 0.45", got)
	}
}

func TestSaveLoad(t *testing.T) {
	s, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}
	s.Q().Set(tabular.State{0, 1, 2, 3}, 1, 1.5)

	filename := filepath.Join(t.TempDir(), "sarsa.json")
	if err := s.Save(filename); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := loaded.Load(filename); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.Q().Value(tabular.State{0, 1, 2, 3}, 1); got != 1.5 {
		t.Errorf("load: got %v want 1.5", got)
	}
}

func TestRegistered(t *testing.T) {
	a, err := agent.New(agent.Sarsa, config(), 1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := a.(agent.OnPolicy); !ok {
		t.Errorf("new: Sarsa should be on-policy")
	}
	if a.Type() != agent.Sarsa {
		t.Errorf("type: got %v want %v", a.Type(), agent.Sarsa)
	}
}
