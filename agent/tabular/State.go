package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StateDims is the number of observation features discretized into a
// State
const StateDims int = 4

// State is a discretized observation: the bucket index of the cart
// position, pole angle, cart velocity, and pole angular velocity, in
// that order. States are compared by value.
type State [StateDims]int

// String renders the State as a tuple, e.g. "(0, 3, 2, 4)". This is the
// textual form used as a key in checkpoints.
func (s State) String() string {
	parts := make([]string, StateDims)
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

var errNotTuple = errors.New("not a parenthesized tuple")

// ParseState parses the textual tuple form of a State. Components may
// be written as integers ("3") or as integral floats ("3.0"), so that
// checkpoints whose keys were re-rendered as floats can still be read.
func ParseState(text string) (State, error) {
	var s State

	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
		return s, errNotTuple
	}

	parts := strings.Split(text[1:len(text)-1], ",")
	if len(parts) != StateDims {
		return s, fmt.Errorf("tuple has %v components, want %v", len(parts),
			StateDims)
	}

	for i, part := range parts {
		v, err := parseComponent(strings.TrimSpace(part))
		if err != nil {
			return s, fmt.Errorf("component %v: %w", i, err)
		}
		s[i] = v
	}
	return s, nil
}

func parseComponent(text string) (int, error) {
	if v, err := strconv.Atoi(text); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is not an integral bucket index", text)
	}
	return int(f), nil
}
