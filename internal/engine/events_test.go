package engine

import (
	"testing"

	"github.com/tatianab/researcher-life/internal/catalog"
	"github.com/tatianab/researcher-life/internal/models"
)

func eventEngine(t *testing.T, rng *scripted, events ...models.RandomEvent) *Engine {
	t.Helper()
	actions := []models.Action{{ID: "rest", Name: "Rest"}, {ID: "coding", Name: "Coding", StaminaCost: 10}}
	cat, err := catalog.New(actions, nil, nil, events)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(cat, rng, quietLogger())
}

func TestPickEventFirstSuccessWins(t *testing.T) {
	e := eventEngine(t, &scripted{floats: []float64{0.5, 0.5}},
		models.RandomEvent{ID: "e1", Probability: 1.0},
		models.RandomEvent{ID: "e2", Probability: 1.0},
	)
	for i := 0; i < 2; i++ {
		ev, ok := e.PickEvent("coding", models.GameState{})
		if !ok || ev.ID != "e1" {
			t.Fatalf("expected e1, got %q ok=%v", ev.ID, ok)
		}
	}
}

func TestPickEventFallsThroughFailedTrials(t *testing.T) {
	e := eventEngine(t, &scripted{floats: []float64{0.6, 0.1}},
		models.RandomEvent{ID: "likely", Probability: 0.5},
		models.RandomEvent{ID: "rare", Probability: 0.2},
	)
	ev, ok := e.PickEvent("coding", models.GameState{})
	if !ok || ev.ID != "rare" {
		t.Fatalf("expected rare after likely failed, got %q ok=%v", ev.ID, ok)
	}

	ev, ok = e.PickEvent("coding", models.GameState{})
	if ok {
		t.Fatalf("expected no event once every trial fails, got %q", ev.ID)
	}
}

func TestPickEventEligibility(t *testing.T) {
	condition := &models.Condition{Stat: models.Insight, Op: models.GreaterOrEqual, Value: 50}
	e := eventEngine(t, &scripted{floats: []float64{0, 0, 0}},
		models.RandomEvent{ID: "after_rest", Probability: 1, TriggerAction: "rest"},
		models.RandomEvent{ID: "insightful", Probability: 1, Condition: condition},
		models.RandomEvent{ID: "general", Probability: 1},
	)

	s := models.GameState{}
	s.Stats[models.Insight] = 49
	if got := e.EligibleEvents("coding", s); len(got) != 1 || got[0].ID != "general" {
		t.Fatalf("unexpected eligible events %+v", got)
	}
	if ev, _ := e.PickEvent("coding", s); ev.ID != "general" {
		t.Fatalf("expected general, got %q", ev.ID)
	}

	s.Stats[models.Insight] = 50
	if ev, _ := e.PickEvent("coding", s); ev.ID != "insightful" {
		t.Fatalf("expected insightful, got %q", ev.ID)
	}
	if ev, _ := e.PickEvent("rest", s); ev.ID != "after_rest" {
		t.Fatalf("expected after_rest, got %q", ev.ID)
	}
}

func TestApplyEventClamps(t *testing.T) {
	e := newTestEngine(t, &scripted{})
	s := e.NewGame()
	s.Stamina = 4
	s.Research = 95
	s.Week = 7

	bug, _ := findEvent(e, "coding_bug_swamp")
	res := e.ApplyEvent(s, bug)
	if res.State.Stamina != 0 || res.StaminaDelta != -4 {
		t.Fatalf("expected stamina floored at 0, got %d", res.State.Stamina)
	}
	if res.State.Week != 7 {
		t.Fatalf("events must not advance the week")
	}

	breakthrough, _ := findEvent(e, "coding_breakthrough")
	res = e.ApplyEvent(s, breakthrough)
	if res.State.Research != 100 {
		t.Fatalf("expected research clamped to 100, got %d", res.State.Research)
	}
	if res.State.Log[0] != res.Summary || res.Summary != "Event: Technical Breakthrough / Coding: +8, Insight: +5, Research: +10" {
		t.Fatalf("unexpected summary %q", res.Summary)
	}

	acceptance, _ := findEvent(e, "writing_acceptance")
	res = e.ApplyEvent(s, acceptance)
	if res.MoneyDelta != 5000 {
		t.Fatalf("expected +5000 money, got %d", res.MoneyDelta)
	}
}

func findEvent(e *Engine, id string) (models.RandomEvent, bool) {
	for _, ev := range e.Catalog().Events() {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.RandomEvent{}, false
}
