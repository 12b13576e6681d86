package scenario

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tatianab/researcher-life/internal/models"
)

var (
	ErrNotPlaying    = errors.New("scenario not started")
	ErrUnknownNode   = errors.New("unknown scenario node")
	ErrUnknownChoice = errors.New("unknown choice")
)

// Vector is the scenario's own stat set.
type Vector struct {
	Week     int
	Stamina  int
	Research int
}

// StartVector is the stat set a new scenario begins with.
var StartVector = Vector{Week: 1, Stamina: 100, Research: 0}

func (v Vector) Get(s Stat) int {
	switch s {
	case Stamina:
		return v.Stamina
	case Research:
		return v.Research
	}
	return 0
}

// Apply advances the week and adds the choice's deltas within each stat's
// bounds.
func (v Vector) Apply(e Effect) Vector {
	vals := make([]int, numStats)
	vals[Stamina] = v.Stamina
	vals[Research] = v.Research
	vals = models.ApplyClamped(vals, []models.Delta[Stat](e), Stat.bounds)
	return Vector{
		Week:     v.Week + 1,
		Stamina:  vals[Stamina],
		Research: vals[Research],
	}
}

// Phase is the top-level machine state.
type Phase int

const (
	Idle Phase = iota
	Playing
)

func (p Phase) String() string {
	if p == Playing {
		return "playing"
	}
	return "idle"
}

// Machine walks the graph. It is a value: every transition returns a new
// Machine and leaves the receiver untouched.
type Machine struct {
	graph  *Graph
	log    *slog.Logger
	phase  Phase
	nodeID string
	stats  Vector
}

func NewMachine(g *Graph, logger *slog.Logger) Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return Machine{
		graph:  g,
		log:    logger,
		phase:  Idle,
		nodeID: g.Start,
		stats:  StartVector,
	}
}

func (m Machine) Phase() Phase   { return m.phase }
func (m Machine) NodeID() string { return m.nodeID }
func (m Machine) Stats() Vector  { return m.stats }

// Node returns the current node.
func (m Machine) Node() (Node, bool) {
	return m.graph.Node(m.nodeID)
}

// Start moves an idle machine to playing. Starting twice is a no-op.
func (m Machine) Start() Machine {
	if m.phase == Playing {
		return m
	}
	m.phase = Playing
	m.log.Debug("scenario started", "node", m.nodeID)
	return m
}

// Transition describes one resolved choice.
type Transition struct {
	From   string
	Choice Choice
	To     string
	Before Vector
	After  Vector
}

// Choose applies choiceID on the current node. On error the returned
// Machine equals m.
func (m Machine) Choose(choiceID string) (Machine, Transition, error) {
	if m.phase != Playing {
		return m, Transition{}, ErrNotPlaying
	}
	node, ok := m.graph.Node(m.nodeID)
	if !ok {
		return m, Transition{}, fmt.Errorf("%w: %q", ErrUnknownNode, m.nodeID)
	}
	choice, ok := node.Choice(choiceID)
	if !ok {
		m.log.Debug("choice ignored", "node", m.nodeID, "choice", choiceID)
		return m, Transition{}, fmt.Errorf("%w: %q on node %q", ErrUnknownChoice, choiceID, m.nodeID)
	}

	after := m.stats.Apply(choice.Effects)
	to := choice.Next.Resolve(after)
	tr := Transition{From: m.nodeID, Choice: choice, To: to, Before: m.stats, After: after}

	m.stats = after
	m.nodeID = to
	m.log.Debug("scenario choice", "node", tr.From, "choice", choiceID, "next", to,
		"week", after.Week, "stamina", after.Stamina, "research", after.Research)
	return m, tr, nil
}

// Terminal reports whether every choice of the current node loops back to it.
func (m Machine) Terminal() bool {
	node, ok := m.Node()
	if !ok || len(node.Choices) == 0 {
		return true
	}
	for _, c := range node.Choices {
		for _, target := range c.Next.targets() {
			if target != node.ID {
				return false
			}
		}
	}
	return true
}
