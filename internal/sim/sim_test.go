package sim

import (
	"io"
	"log/slog"
	"testing"

	"github.com/tatianab/researcher-life/internal/catalog"
	"github.com/tatianab/researcher-life/internal/engine"
	"github.com/tatianab/researcher-life/internal/models"
	"github.com/tatianab/researcher-life/internal/random"
)

func newTestEngine(t *testing.T, seed int64) *engine.Engine {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return engine.New(cat, random.New(seed), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunPlaysEveryWeek(t *testing.T) {
	for _, p := range []Policy{Greedy{Reserve: 10}, Random{Rng: random.New(3)}} {
		e := newTestEngine(t, 11)
		report, err := Run(e, p, 52)
		if err != nil {
			t.Fatalf("%s: %v", p.Name(), err)
		}
		if len(report.Turns) != 52 || report.Final.Week != 53 {
			t.Fatalf("%s: expected 52 turns ending in week 53, got %d turns week %d", p.Name(), len(report.Turns), report.Final.Week)
		}
		for i, turn := range report.Turns {
			if turn.Week != i+1 {
				t.Fatalf("%s: turn %d recorded week %d", p.Name(), i, turn.Week)
			}
		}
		for _, st := range models.RankedStats() {
			if v := report.Final.Stats.Get(st); v < 0 || v > 100 {
				t.Fatalf("%s: %s out of range: %d", p.Name(), st, v)
			}
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	a, err := Run(newTestEngine(t, 99), Greedy{Reserve: 10}, 30)
	if err != nil {
		t.Fatalf("run a: %v", err)
	}
	b, err := Run(newTestEngine(t, 99), Greedy{Reserve: 10}, 30)
	if err != nil {
		t.Fatalf("run b: %v", err)
	}
	if a.Final.Stats != b.Final.Stats || a.Final.Money != b.Final.Money || a.EventCount() != b.EventCount() {
		t.Fatalf("same seed produced different runs: %+v vs %+v", a.Final, b.Final)
	}
}

func TestGreedyRestsWhenTired(t *testing.T) {
	e := newTestEngine(t, 1)
	s := e.NewGame()
	s.Stamina = 20
	if got := (Greedy{Reserve: 10}).Choose(e, s); got != models.RestActionID {
		t.Fatalf("expected rest with low stamina, got %s", got)
	}
	s.Stamina = 100
	if got := (Greedy{Reserve: 10}).Choose(e, s); got == models.RestActionID {
		t.Fatalf("expected a training action with full stamina")
	}
}
