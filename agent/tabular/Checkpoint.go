package tabular

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Checkpoint section keys
const (
	QValues  string = "q_values"
	QAValues string = "qa_values"
	QBValues string = "qb_values"
	NValues  string = "n_values"
)

// ErrMissingSection is wrapped by FormatErrors reporting that a
// checkpoint lacks a section the agent needs
var ErrMissingSection = errors.New("missing section")

// FormatError reports a checkpoint that could not be parsed
type FormatError struct {
	Section string // Empty if the whole document is malformed
	Key     string // Empty if the section as a whole is malformed
	Err     error
}

func (e *FormatError) Error() string {
	switch {
	case e.Section == "":
		return fmt.Sprintf("checkpoint: malformed document: %v", e.Err)
	case e.Key == "":
		return fmt.Sprintf("checkpoint: section %q: %v", e.Section, e.Err)
	default:
		return fmt.Sprintf("checkpoint: section %q key %q: %v", e.Section,
			e.Key, e.Err)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ShapeError reports a checkpoint entry that is well formed but does
// not fit the agent loading it, such as a value vector whose length
// differs from the number of actions or a State outside the bins of
// the agent's Discretizer
type ShapeError struct {
	Section string
	Key     string
	Reason  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("checkpoint: section %q state %v: %v", e.Section,
		e.Key, e.Reason)
}

// Sections names the tables stored in, or loaded from, a checkpoint
type Sections struct {
	Values map[string]*ValueTable
	Counts map[string]*CountTable
}

// Save writes the tables of s to filename as a JSON document, with one
// object per section mapping the textual form of each State to its
// vector. The document is written to a temporary file that then
// replaces filename.
func Save(filename string, s Sections) error {
	doc := make(map[string]map[string]interface{},
		len(s.Values)+len(s.Counts))

	for name, table := range s.Values {
		section := make(map[string]interface{}, table.Len())
		for state, values := range table.values {
			for _, v := range values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("save: section %q state %v has "+
						"non-finite value %v", name, state, v)
				}
			}
			section[state.String()] = values
		}
		doc[name] = section
	}
	for name, table := range s.Counts {
		section := make(map[string]interface{}, table.Len())
		for state, counts := range table.counts {
			section[state.String()] = counts
		}
		doc[name] = section
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save: could not encode checkpoint: %w", err)
	}

	return writeFile(filename, data)
}

// writeFile writes data to a temporary file in the directory of
// filename and renames it to filename
func writeFile(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save: could not create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp*")
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save: could not write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: could not close file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("save: could not replace %v: %w", filename, err)
	}
	return nil
}

// Load reads the checkpoint at filename into the tables of s. Each
// section named in s must be present in the checkpoint. Every vector
// must have as many entries as its table has actions, and every State
// must be one that d could produce.
//
// Load parses and validates the entire checkpoint before modifying
// any table; on error, the tables of s are left unchanged. On success,
// the previous contents of each table are replaced.
func Load(filename string, s Sections, d *Discretizer) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return &FormatError{Err: err}
	}

	values := make(map[string]map[State][]float64, len(s.Values))
	for name, table := range s.Values {
		var section map[string][]float64
		if err := decodeSection(doc, name, &section); err != nil {
			return err
		}

		entries, err := parseSection(name, section, table.actions, d)
		if err != nil {
			return err
		}
		values[name] = entries
	}

	counts := make(map[string]map[State][]int, len(s.Counts))
	for name, table := range s.Counts {
		var section map[string][]float64
		if err := decodeSection(doc, name, &section); err != nil {
			return err
		}

		entries, err := parseSection(name, section, table.actions, d)
		if err != nil {
			return err
		}

		converted := make(map[State][]int, len(entries))
		for state, vector := range entries {
			if converted[state], err = toCounts(vector); err != nil {
				return &FormatError{Section: name, Key: state.String(),
					Err: err}
			}
		}
		counts[name] = converted
	}

	for name, entries := range values {
		s.Values[name].values = entries
	}
	for name, entries := range counts {
		s.Counts[name].counts = entries
	}
	return nil
}

// decodeSection decodes section name of doc into out
func decodeSection(doc map[string]json.RawMessage, name string,
	out interface{}) error {
	raw, ok := doc[name]
	if !ok {
		return &FormatError{Section: name, Err: ErrMissingSection}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &FormatError{Section: name, Err: err}
	}
	return nil
}

// parseSection parses the textual State keys of a section and checks
// that each vector fits an agent with the argument number of actions
// and Discretizer
func parseSection(name string, section map[string][]float64, actions int,
	d *Discretizer) (map[State][]float64, error) {
	entries := make(map[State][]float64, len(section))

	for key, vector := range section {
		state, err := ParseState(key)
		if err != nil {
			return nil, &FormatError{Section: name, Key: key, Err: err}
		}
		if _, ok := entries[state]; ok {
			return nil, &FormatError{Section: name, Key: key,
				Err: fmt.Errorf("duplicate state %v", state)}
		}

		if len(vector) != actions {
			return nil, &ShapeError{Section: name, Key: key,
				Reason: fmt.Sprintf("has %v entries, expected %v", len(vector),
					actions)}
		}
		if d != nil && !d.Contains(state) {
			return nil, &ShapeError{Section: name, Key: key,
				Reason: fmt.Sprintf("outside of bins %v", d.Bins())}
		}

		entries[state] = append([]float64(nil), vector...)
	}
	return entries, nil
}

// toCounts converts a vector of integral, non-negative floats into
// visit counts
func toCounts(vector []float64) ([]int, error) {
	counts := make([]int, len(vector))
	for i, v := range vector {
		if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
			return nil, fmt.Errorf("illegal visit count %v", v)
		}
		counts[i] = int(v)
	}
	return counts, nil
}
