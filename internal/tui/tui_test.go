package tui

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/researcher-life/internal/catalog"
	"github.com/tatianab/researcher-life/internal/engine"
	"github.com/tatianab/researcher-life/internal/models"
	"github.com/tatianab/researcher-life/internal/random"
)

// lucky fires every event and rolls minimum stats.
type lucky struct{}

func (lucky) IntN(int) int     { return 0 }
func (lucky) Float64() float64 { return 0 }

func newTestModel(t *testing.T, rng random.Source, names *models.NameStore) model {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(cat, rng, logger)
	return NewModel(Options{Engine: eng, Names: names, Logger: logger})
}

func enter(t *testing.T, m model, input string) model {
	t.Helper()
	m.textInput.SetValue(input)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model)
}

func TestNamePromptStoresName(t *testing.T) {
	names := models.NewNameStore(t.TempDir())
	m := newTestModel(t, random.New(1), names)
	if m.state != stateName {
		t.Fatalf("expected name prompt without a stored name, got %v", m.state)
	}

	m = enter(t, m, "   ")
	if m.state != stateName {
		t.Fatalf("blank name should keep the prompt open")
	}

	m = enter(t, m, "  Ada  ")
	if m.state != statePlaying || m.name != "Ada" {
		t.Fatalf("expected playing as Ada, got state %v name %q", m.state, m.name)
	}
	stored, ok, err := names.Load()
	if err != nil || !ok || stored != "Ada" {
		t.Fatalf("expected stored name Ada, got %q %v %v", stored, ok, err)
	}
}

func TestStoredNameSkipsPrompt(t *testing.T) {
	names := models.NewNameStore(t.TempDir())
	if _, err := names.Save("Grace"); err != nil {
		t.Fatalf("save: %v", err)
	}
	m := newTestModel(t, random.New(1), names)
	if m.state != statePlaying || m.name != "Grace" {
		t.Fatalf("expected to resume as Grace, got state %v name %q", m.state, m.name)
	}
}

func TestCommandsDriveTheGame(t *testing.T) {
	names := models.NewNameStore(t.TempDir())
	_, _ = names.Save("Ada")
	m := newTestModel(t, random.New(7), names)

	m = enter(t, m, "coding")
	if m.state == stateEvent {
		m = enter(t, m, "")
	}
	if m.game.Week != 2 {
		t.Fatalf("expected week 2 after one action, got %d", m.game.Week)
	}

	m = enter(t, m, "buy coffee")
	if m.game.Inventory.Count("coffee") != 1 {
		t.Fatalf("expected one coffee after buying, got %v", m.game.Inventory)
	}
	m = enter(t, m, "use coffee")
	if m.game.Inventory.Count("coffee") != 0 {
		t.Fatalf("expected coffee consumed, got %v", m.game.Inventory)
	}

	before := m.game
	m = enter(t, m, "dance wildly")
	if m.game.Week != before.Week || m.game.Money != before.Money {
		t.Fatalf("unknown command changed the game")
	}

	m = enter(t, m, "/reset")
	if m.state != stateName {
		t.Fatalf("reset should ask for a name again, got %v", m.state)
	}
	if m.game.Week != 1 || m.game.Money != models.StartingMoney || len(m.game.Inventory) != 0 {
		t.Fatalf("reset did not restore the starting state: %+v", m.game)
	}
}

func TestEventWaitsForConfirmation(t *testing.T) {
	names := models.NewNameStore(t.TempDir())
	_, _ = names.Save("Ada")
	m := newTestModel(t, lucky{}, names)

	m = enter(t, m, "coding")
	if m.state != stateEvent {
		t.Fatalf("expected a pending event, got %v", m.state)
	}
	pending := m.game
	m = enter(t, m, "")
	if m.state != statePlaying {
		t.Fatalf("expected to return to play after confirming, got %v", m.state)
	}
	if len(m.game.Log) != len(pending.Log)+1 {
		t.Fatalf("expected the event to be logged, got %v", m.game.Log)
	}
}

func TestTiredActionIsRejected(t *testing.T) {
	names := models.NewNameStore(t.TempDir())
	_, _ = names.Save("Ada")
	m := newTestModel(t, random.New(3), names)
	m.game.Stamina = 5

	m = enter(t, m, "coding")
	if m.game.Week != 1 || m.game.Stamina != 5 {
		t.Fatalf("action without stamina should be rejected, got week %d stamina %d", m.game.Week, m.game.Stamina)
	}
}
