package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/researcher-life/internal/scenario"
)

func newTestScenario(t *testing.T) scenarioModel {
	t.Helper()
	g, err := scenario.LoadGraph()
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}
	return NewScenarioModel(scenario.NewMachine(g, slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func press(t *testing.T, m scenarioModel, input string) scenarioModel {
	t.Helper()
	m.textInput.SetValue(input)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(scenarioModel)
}

func TestScenarioStartsOnEnter(t *testing.T) {
	m := newTestScenario(t)
	if m.machine.Phase() != scenario.Idle {
		t.Fatalf("expected idle before the first Enter")
	}
	m = press(t, m, "")
	if m.machine.Phase() != scenario.Playing || m.machine.NodeID() != "start" {
		t.Fatalf("expected playing at start, got %s at %s", m.machine.Phase(), m.machine.NodeID())
	}
	if !strings.Contains(m.View(), "1. Run an experiment") {
		t.Fatalf("start node choices not rendered:\n%s", m.View())
	}
}

func TestScenarioChoicesByNumberAndName(t *testing.T) {
	m := press(t, newTestScenario(t), "")

	m = press(t, m, "2")
	if m.machine.NodeID() != "week2_normal" {
		t.Fatalf("choice 2 should read a paper, got %s", m.machine.NodeID())
	}
	m = press(t, m, "seminr")
	if m.machine.NodeID() != "week3" {
		t.Fatalf("fuzzy seminar should reach week3, got %s", m.machine.NodeID())
	}
	if want := (scenario.Vector{Week: 3, Stamina: 90, Research: 18}); m.machine.Stats() != want {
		t.Fatalf("stats = %+v, want %+v", m.machine.Stats(), want)
	}
	if len(m.history) != 2 {
		t.Fatalf("expected two history lines, got %v", m.history)
	}
}

func TestScenarioRejectsUnknownInput(t *testing.T) {
	m := press(t, newTestScenario(t), "")
	before := m.machine

	for _, input := range []string{"9", "0", "fly to the moon"} {
		m = press(t, m, input)
		if m.note == "" {
			t.Fatalf("%q: expected a note for an unknown choice", input)
		}
		if m.machine.NodeID() != before.NodeID() || m.machine.Stats() != before.Stats() {
			t.Fatalf("%q: unknown choice changed the machine", input)
		}
	}
}
