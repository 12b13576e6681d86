package catalog

import (
	"errors"
	"testing"

	"github.com/tatianab/researcher-life/internal/models"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(c.Actions()); got != 8 {
		t.Fatalf("expected 8 actions, got %d", got)
	}
	if got := len(c.Items()); got != 9 {
		t.Fatalf("expected 9 items, got %d", got)
	}
	if got := len(c.Events()); got != 11 {
		t.Fatalf("expected 11 events, got %d", got)
	}

	rest, ok := c.Action(models.RestActionID)
	if !ok || rest.StaminaCost != 0 || len(rest.Effect) != 0 {
		t.Fatalf("unexpected rest action %+v", rest)
	}
	ta, ok := c.Action("ta")
	if !ok || ta.MoneyReward != 2000 || ta.StaminaCost != 16 {
		t.Fatalf("unexpected ta action %+v", ta)
	}
	coding, _ := c.Action("coding")
	if coding.Effect.Get(models.Coding) != 5 || coding.StaminaCost != 18 {
		t.Fatalf("unexpected coding action %+v", coding)
	}

	grant, ok := c.Item("research_grant")
	if !ok || grant.Price != 50000 || grant.Effect.Get(models.Research) != 20 || grant.Effect.Get(models.Money) != 10000 {
		t.Fatalf("unexpected research_grant %+v", grant)
	}
}

func TestItemsIn(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tests := []struct {
		category string
		want     []string
	}{
		{"drinks", []string{"coffee", "energy_drink", "green_tea"}},
		{"research", []string{"paper_template", "coding_book", "presentation_guide"}},
		{"premium", []string{"high_end_pc", "conference_ticket", "research_grant"}},
	}
	for _, tc := range tests {
		got := c.ItemsIn(tc.category)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %d items want %d", tc.category, len(got), len(tc.want))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Errorf("%s[%d] = %s, want %s", tc.category, i, got[i].ID, id)
			}
		}
	}
	if got := c.ItemsIn("weapons"); got != nil {
		t.Fatalf("expected nil for unknown category, got %v", got)
	}
}

func TestEventOrderPreserved(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	events := c.Events()
	if events[0].ID != "seminar_famous_researcher" || events[len(events)-1].ID != "good_mood" {
		t.Fatalf("unexpected event order: first=%s last=%s", events[0].ID, events[len(events)-1].ID)
	}
	if events[len(events)-1].TriggerAction != "" {
		t.Fatalf("good_mood should be a general event")
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	actions := []models.Action{{ID: "rest"}, {ID: "coding", StaminaCost: 10}}
	items := []models.Item{{ID: "coffee", Price: 300}}

	tests := []struct {
		name       string
		actions    []models.Action
		items      []models.Item
		categories []models.Category
		events     []models.RandomEvent
	}{
		{name: "duplicate action", actions: append(actions, models.Action{ID: "rest"}), items: items},
		{name: "free item", actions: actions, items: []models.Item{{ID: "coffee"}}},
		{name: "unknown category item", actions: actions, items: items,
			categories: []models.Category{{ID: "drinks", Items: []string{"tea"}}}},
		{name: "zero probability", actions: actions, items: items,
			events: []models.RandomEvent{{ID: "e", Probability: 0}}},
		{name: "unknown trigger", actions: actions, items: items,
			events: []models.RandomEvent{{ID: "e", Probability: 0.5, TriggerAction: "dance"}}},
		{name: "bad comparator", actions: actions, items: items,
			events: []models.RandomEvent{{ID: "e", Probability: 0.5, Condition: &models.Condition{Stat: models.Insight, Op: "=="}}}},
	}
	for _, tc := range tests {
		_, err := New(tc.actions, tc.items, tc.categories, tc.events)
		if !errors.Is(err, ErrInvalidCatalog) {
			t.Errorf("%s: expected ErrInvalidCatalog, got %v", tc.name, err)
		}
	}
}

func TestParseRejectsUnknownEffectKey(t *testing.T) {
	_, err := Parse([]byte("actions:\n  - id: nap\n    effect: {dreaming: 3}\n"), nil, nil)
	if err == nil {
		t.Fatalf("expected parse error for unknown effect key")
	}
}
