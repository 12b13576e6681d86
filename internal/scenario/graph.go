// Package scenario runs the branching narrative mode: a fixed graph of nodes
// whose choices move stamina and research and pick the next node either
// directly or through a threshold test.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/tatianab/researcher-life/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/graph.yaml
var graphYAML []byte

var ErrInvalidGraph = errors.New("invalid scenario graph")

// Stat is a scenario value a choice may change. Week is advanced separately.
type Stat int

const (
	Stamina Stat = iota
	Research

	numStats
)

func ParseStat(key string) (Stat, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "stamina":
		return Stamina, true
	case "research":
		return Research, true
	}
	return 0, false
}

func (s Stat) String() string {
	switch s {
	case Stamina:
		return "stamina"
	case Research:
		return "research"
	}
	return "unknown"
}

func (s *Stat) UnmarshalText(text []byte) error {
	v, ok := ParseStat(string(text))
	if !ok {
		return fmt.Errorf("unknown scenario stat %q", text)
	}
	*s = v
	return nil
}

func (s Stat) bounds() models.Bounds {
	return models.Bounds{Min: 0, Max: 100}
}

// Effect is an ordered set of scenario stat deltas.
type Effect []models.Delta[Stat]

func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	deltas, err := models.DecodeDeltas(node, ParseStat)
	if err != nil {
		return err
	}
	*e = deltas
	return nil
}

// Threshold picks Then when the post-choice stat passes the test, else Else.
type Threshold struct {
	Stat  Stat              `yaml:"stat"`
	Op    models.Comparator `yaml:"op"`
	Value int               `yaml:"value"`
	Then  string            `yaml:"then"`
	Else  string            `yaml:"else"`
}

// Next is either a literal node id or a Threshold.
type Next struct {
	Node string
	If   *Threshold
}

func (n *Next) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		n.Node = node.Value
		n.If = nil
		return nil
	}
	var th Threshold
	if err := node.Decode(&th); err != nil {
		return err
	}
	n.Node = ""
	n.If = &th
	return nil
}

// Resolve returns the target node for the given stats.
func (n Next) Resolve(v Vector) string {
	if n.If == nil {
		return n.Node
	}
	if n.If.Op.Compare(v.Get(n.If.Stat), n.If.Value) {
		return n.If.Then
	}
	return n.If.Else
}

func (n Next) targets() []string {
	if n.If == nil {
		return []string{n.Node}
	}
	return []string{n.If.Then, n.If.Else}
}

type Choice struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Effects Effect `yaml:"effects"`
	Next    Next   `yaml:"next"`
}

type Node struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Choices     []Choice `yaml:"choices"`
}

// Choice looks up a choice of the node by id.
func (n Node) Choice(id string) (Choice, bool) {
	for _, c := range n.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Graph is the immutable narrative graph. It may contain cycles.
type Graph struct {
	Start string
	nodes map[string]Node
	order []string
}

// LoadGraph parses the embedded graph.
func LoadGraph() (*Graph, error) {
	return ParseGraph(graphYAML)
}

func ParseGraph(data []byte) (*Graph, error) {
	var doc struct {
		Start string `yaml:"start"`
		Nodes []Node `yaml:"nodes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scenario graph: %w", err)
	}
	return NewGraph(doc.Start, doc.Nodes)
}

// NewGraph checks that every referenced node exists.
func NewGraph(start string, nodes []Node) (*Graph, error) {
	g := &Graph{Start: start, nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", ErrInvalidGraph)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidGraph, n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	if _, ok := g.nodes[start]; !ok {
		return nil, fmt.Errorf("%w: start node %q not found", ErrInvalidGraph, start)
	}
	for _, n := range nodes {
		seen := make(map[string]bool, len(n.Choices))
		for _, c := range n.Choices {
			if seen[c.ID] {
				return nil, fmt.Errorf("%w: node %q repeats choice %q", ErrInvalidGraph, n.ID, c.ID)
			}
			seen[c.ID] = true
			if c.Next.If != nil && !c.Next.If.Op.Valid() {
				return nil, fmt.Errorf("%w: choice %q has unknown comparator %q", ErrInvalidGraph, c.ID, c.Next.If.Op)
			}
			for _, target := range c.Next.targets() {
				if _, ok := g.nodes[target]; !ok {
					return nil, fmt.Errorf("%w: choice %q of node %q points to unknown node %q", ErrInvalidGraph, c.ID, n.ID, target)
				}
			}
		}
	}
	return g, nil
}

func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns the nodes in declaration order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}
