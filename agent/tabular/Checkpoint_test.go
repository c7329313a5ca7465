package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func writeDoc(t *testing.T, doc string) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := os.WriteFile(filename, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestCheckpointRoundTrip(t *testing.T) {
	d, err := NewDiscretizer([]int{5, 5, 5, 5})
	if err != nil {
		t.Fatal(err)
	}

	q := NewValueTable(3)
	q.Set(State{0, 0, 0, 0}, 1, 0.5)
	q.Set(State{5, 4, 3, 2}, 2, -1.25)
	q.Set(State{1, 2, 3, 4}, 0, 1.0/3.0)

	n := NewCountTable(3)
	n.Increment(State{0, 0, 0, 0}, 1)
	n.Increment(State{0, 0, 0, 0}, 1)

	filename := filepath.Join(t.TempDir(), "run", "checkpoint.json")
	saved := Sections{
		Values: map[string]*ValueTable{QValues: q},
		Counts: map[string]*CountTable{NValues: n},
	}
	if err := Save(filename, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	q2, n2 := NewValueTable(3), NewCountTable(3)
	loaded := Sections{
		Values: map[string]*ValueTable{QValues: q2},
		Counts: map[string]*CountTable{NValues: n2},
	}
	if err := Load(filename, loaded, d); err != nil {
		t.Fatalf("load: %v", err)
	}

	if q2.Len() != q.Len() {
		t.Fatalf("load: got %v states want %v", q2.Len(), q.Len())
	}
	for _, s := range q.States() {
		if !floats.Equal(q.At(s), q2.At(s)) {
			t.Errorf("load: state %v has values %v want %v", s, q2.At(s),
				q.At(s))
		}
	}
	if got := n2.At(State{0, 0, 0, 0}); got[0] != 0 || got[1] != 2 ||
		got[2] != 0 {
		t.Errorf("load: counts %v want [0 2 0]", got)
	}
}

func TestLoadFloatKeys(t *testing.T) {
	filename := writeDoc(t, `{"q_values": {"(1.0, 2.0, 3.0, 4.0)": [1, 2]}}`)

	q := NewValueTable(2)
	err := Load(filename, Sections{Values: map[string]*ValueTable{QValues: q}},
		nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := q.At(State{1, 2, 3, 4}); !floats.Equal(got, []float64{1, 2}) {
		t.Errorf("load: got %v want [1 2]", got)
	}
}

func TestLoadErrors(t *testing.T) {
	d, err := NewDiscretizer([]int{5, 5, 5, 5})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		doc    string
		counts bool
		format bool // FormatError if true, otherwise ShapeError
	}{
		{"not json", `{"q_values": `, false, true},
		{"missing section", `{"qa_values": {}}`, false, true},
		{"malformed key", `{"q_values": {"(1, 2, x, 4)": [0, 0]}}`, false, true},
		{"short key", `{"q_values": {"(1, 2, 3)": [0, 0]}}`, false, true},
		{"non-numeric value", `{"q_values": {"(1, 2, 3, 4)": ["a", 0]}}`,
			false, true},
		{"duplicate state",
			`{"q_values": {"(1, 2, 3, 4)": [0, 0], "(1.0, 2, 3, 4)": [0, 0]}}`,
			false, true},
		{"too many actions", `{"q_values": {"(1, 2, 3, 4)": [0, 0, 0]}}`,
			false, false},
		{"too few actions", `{"q_values": {"(1, 2, 3, 4)": [0]}}`, false,
			false},
		{"state outside bins", `{"q_values": {"(6, 2, 3, 4)": [0, 0]}}`,
			false, false},
		{"missing counts", `{"q_values": {}}`, true, true},
		{"negative count",
			`{"q_values": {}, "n_values": {"(1, 2, 3, 4)": [-1, 0]}}`, true,
			true},
		{"fractional count",
			`{"q_values": {}, "n_values": {"(1, 2, 3, 4)": [0.5, 0]}}`, true,
			true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			filename := writeDoc(t, test.doc)

			q := NewValueTable(2)
			q.Set(State{0, 0, 0, 0}, 0, 7)
			s := Sections{Values: map[string]*ValueTable{QValues: q}}
			if test.counts {
				s.Counts = map[string]*CountTable{NValues: NewCountTable(2)}
			}

			err := Load(filename, s, d)
			if err == nil {
				t.Fatalf("load: expected error")
			}

			var formatErr *FormatError
			var shapeErr *ShapeError
			if test.format && !errors.As(err, &formatErr) {
				t.Errorf("load: expected FormatError, got %T: %v", err, err)
			}
			if !test.format && !errors.As(err, &shapeErr) {
				t.Errorf("load: expected ShapeError, got %T: %v", err, err)
			}

			// Tables are untouched by a failed load
			if q.Len() != 1 || q.Value(State{0, 0, 0, 0}, 0) != 7 {
				t.Errorf("load: failed load modified the table")
			}
		})
	}
}

func TestLoadMissingSectionIs(t *testing.T) {
	filename := writeDoc(t, `{"q_values": {}}`)

	s := Sections{Values: map[string]*ValueTable{
		QAValues: NewValueTable(2),
		QBValues: NewValueTable(2),
	}}
	err := Load(filename, s, nil)
	if !errors.Is(err, ErrMissingSection) {
		t.Errorf("load: got %v want ErrMissingSection", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "missing.json")
	s := Sections{Values: map[string]*ValueTable{QValues: NewValueTable(2)}}

	if err := Load(filename, s, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("load: got %v want os.ErrNotExist", err)
	}
}
