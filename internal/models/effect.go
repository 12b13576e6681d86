package models

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unbounded marks a missing upper limit in Bounds.
const Unbounded = math.MaxInt

// Bounds is an inclusive range.
type Bounds struct {
	Min int
	Max int
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Delta is a signed change to the value indexed by Key.
type Delta[K ~int] struct {
	Key    K
	Amount int
}

// ApplyClamped returns a copy of vals with every non-zero delta added and the
// touched entries clamped into bounds(key). Deltas on keys outside vals are
// ignored.
func ApplyClamped[K ~int](vals []int, deltas []Delta[K], bounds func(K) Bounds) []int {
	out := make([]int, len(vals))
	copy(out, vals)
	for _, d := range deltas {
		if d.Amount == 0 || int(d.Key) < 0 || int(d.Key) >= len(out) {
			continue
		}
		b := bounds(d.Key)
		out[d.Key] = Clamp(addSaturating(out[d.Key], d.Amount), b.Min, b.Max)
	}
	return out
}

func addSaturating(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// DecodeDeltas reads a YAML mapping of key: amount, keeping document order.
func DecodeDeltas[K ~int](node *yaml.Node, parse func(string) (K, bool)) ([]Delta[K], error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: effect must be a mapping", node.Line)
	}
	out := make([]Delta[K], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		key, ok := parse(keyNode.Value)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown effect key %q", keyNode.Line, keyNode.Value)
		}
		var amount int
		if err := valNode.Decode(&amount); err != nil {
			return nil, fmt.Errorf("line %d: effect %q: %w", valNode.Line, keyNode.Value, err)
		}
		out = append(out, Delta[K]{Key: key, Amount: amount})
	}
	return out, nil
}

// Effect is an ordered set of stat deltas.
type Effect []Delta[Stat]

func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	deltas, err := DecodeDeltas(node, ParseStat)
	if err != nil {
		return err
	}
	*e = deltas
	return nil
}

// Get sums the deltas recorded for s.
func (e Effect) Get(s Stat) int {
	total := 0
	for _, d := range e {
		if d.Key == s {
			total += d.Amount
		}
	}
	return total
}

// Has reports whether any non-zero delta touches one of stats.
func (e Effect) Has(stats ...Stat) bool {
	for _, d := range e {
		if d.Amount == 0 {
			continue
		}
		for _, s := range stats {
			if d.Key == s {
				return true
			}
		}
	}
	return false
}

// Changes renders the non-zero deltas as "Coding: +5, Insight: +2".
func (e Effect) Changes() string {
	parts := make([]string, 0, len(e))
	for _, d := range e {
		if d.Amount == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", d.Key.DisplayName(), signed(d.Amount)))
	}
	return strings.Join(parts, ", ")
}

// String renders the non-zero deltas as "+5 Stamina, +2 Insight".
func (e Effect) String() string {
	parts := make([]string, 0, len(e))
	for _, d := range e {
		if d.Amount == 0 {
			continue
		}
		parts = append(parts, signed(d.Amount)+" "+d.Key.DisplayName())
	}
	return strings.Join(parts, ", ")
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// Comparator is the operator of a threshold test.
type Comparator string

const (
	GreaterOrEqual Comparator = ">="
	Less           Comparator = "<"
	Greater        Comparator = ">"
)

func (c Comparator) Valid() bool {
	switch c {
	case GreaterOrEqual, Less, Greater:
		return true
	}
	return false
}

// Compare evaluates a <c> b. Unknown comparators never pass.
func (c Comparator) Compare(a, b int) bool {
	switch c {
	case GreaterOrEqual:
		return a >= b
	case Less:
		return a < b
	case Greater:
		return a > b
	}
	return false
}
