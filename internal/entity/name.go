package entity

import (
	"slices"
	"strings"
)

// Entity labels in canonical BIDS order.
const (
	Subject     = "sub"
	Session     = "ses"
	Task        = "task"
	Acquisition = "acq"
	Space       = "space"
	Rec         = "rec"
	Run         = "run"
	Proc        = "proc"
	Echo        = "echo"
	Desc        = "desc"
)

var order = []string{Subject, Session, Task, Acquisition, Space, Rec, Run, Proc, Echo, Desc}

func rank(label string) int {
	if i := slices.Index(order, label); i >= 0 {
		return i
	}

	return len(order)
}

// Pair is one "label-value" token.
type Pair struct {
	Label string
	Value string
}

// Name is an immutable set of entities rendered in canonical order.
// Setting a label twice keeps the last value.
type Name struct {
	pairs []Pair
}

// With returns a copy of n with label set to value. Empty values are ignored.
func (n Name) With(label, value string) Name {
	if value == "" {
		return n
	}

	pairs := make([]Pair, 0, len(n.pairs)+1)
	for _, p := range n.pairs {
		if p.Label != label {
			pairs = append(pairs, p)
		}
	}

	pairs = append(pairs, Pair{Label: label, Value: value})
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		return rank(a.Label) - rank(b.Label)
	})

	return Name{pairs: pairs}
}

// Get returns the value of label and whether it is set.
func (n Name) Get(label string) (string, bool) {
	for _, p := range n.pairs {
		if p.Label == label {
			return p.Value, true
		}
	}

	return "", false
}

// Pairs returns a copy of the entities in canonical order.
func (n Name) Pairs() []Pair {
	return slices.Clone(n.pairs)
}

// IsEmpty reports whether no entity is set.
func (n Name) IsEmpty() bool {
	return len(n.pairs) == 0
}

// String renders n as "label-value" tokens joined by "_".
func (n Name) String() string {
	tokens := make([]string, len(n.pairs))
	for i, p := range n.pairs {
		tokens[i] = p.Label + "-" + p.Value
	}

	return strings.Join(tokens, "_")
}
