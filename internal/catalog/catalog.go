// Package catalog holds the fixed tables of actions, shop items and random
// events. The tables ship as YAML embedded in the binary and are validated
// once at load time.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/tatianab/researcher-life/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/actions.yaml
var actionsYAML []byte

//go:embed data/items.yaml
var itemsYAML []byte

//go:embed data/events.yaml
var eventsYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is immutable once built.
type Catalog struct {
	actions    []models.Action
	items      []models.Item
	categories []models.Category
	events     []models.RandomEvent

	actionIdx map[string]int
	itemIdx   map[string]int
}

// Load parses the embedded tables.
func Load() (*Catalog, error) {
	return Parse(actionsYAML, itemsYAML, eventsYAML)
}

// Parse builds a catalog from YAML documents shaped like the embedded ones.
func Parse(actionsDoc, itemsDoc, eventsDoc []byte) (*Catalog, error) {
	var actions struct {
		Actions []models.Action `yaml:"actions"`
	}
	if err := yaml.Unmarshal(actionsDoc, &actions); err != nil {
		return nil, fmt.Errorf("parse actions: %w", err)
	}
	var items struct {
		Categories []models.Category `yaml:"categories"`
		Items      []models.Item     `yaml:"items"`
	}
	if err := yaml.Unmarshal(itemsDoc, &items); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	var events struct {
		Events []models.RandomEvent `yaml:"events"`
	}
	if err := yaml.Unmarshal(eventsDoc, &events); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	return New(actions.Actions, items.Items, items.Categories, events.Events)
}

// New validates the tables and indexes them by id.
func New(actions []models.Action, items []models.Item, categories []models.Category, events []models.RandomEvent) (*Catalog, error) {
	c := &Catalog{
		actions:    actions,
		items:      items,
		categories: categories,
		events:     events,
		actionIdx:  make(map[string]int, len(actions)),
		itemIdx:    make(map[string]int, len(items)),
	}
	for i, a := range actions {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: action %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.actionIdx[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate action %q", ErrInvalidCatalog, a.ID)
		}
		if a.StaminaCost < 0 || a.MoneyReward < 0 {
			return nil, fmt.Errorf("%w: action %q has a negative cost or reward", ErrInvalidCatalog, a.ID)
		}
		c.actionIdx[a.ID] = i
	}
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.itemIdx[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrInvalidCatalog, it.ID)
		}
		if it.Price <= 0 {
			return nil, fmt.Errorf("%w: item %q must have a positive price", ErrInvalidCatalog, it.ID)
		}
		c.itemIdx[it.ID] = i
	}
	seenCategory := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if seenCategory[cat.ID] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.ID)
		}
		seenCategory[cat.ID] = true
		for _, id := range cat.Items {
			if _, ok := c.itemIdx[id]; !ok {
				return nil, fmt.Errorf("%w: category %q lists unknown item %q", ErrInvalidCatalog, cat.ID, id)
			}
		}
	}
	seenEvent := make(map[string]bool, len(events))
	for _, ev := range events {
		if seenEvent[ev.ID] {
			return nil, fmt.Errorf("%w: duplicate event %q", ErrInvalidCatalog, ev.ID)
		}
		seenEvent[ev.ID] = true
		if ev.Probability <= 0 || ev.Probability > 1 {
			return nil, fmt.Errorf("%w: event %q probability %v outside (0,1]", ErrInvalidCatalog, ev.ID, ev.Probability)
		}
		if ev.TriggerAction != "" {
			if _, ok := c.actionIdx[ev.TriggerAction]; !ok {
				return nil, fmt.Errorf("%w: event %q triggers on unknown action %q", ErrInvalidCatalog, ev.ID, ev.TriggerAction)
			}
		}
		if ev.Condition != nil && !ev.Condition.Op.Valid() {
			return nil, fmt.Errorf("%w: event %q has unknown comparator %q", ErrInvalidCatalog, ev.ID, ev.Condition.Op)
		}
	}
	return c, nil
}

// Actions returns the action menu in display order.
func (c *Catalog) Actions() []models.Action {
	return append([]models.Action(nil), c.actions...)
}

func (c *Catalog) Action(id string) (models.Action, bool) {
	i, ok := c.actionIdx[id]
	if !ok {
		return models.Action{}, false
	}
	return c.actions[i], true
}

// Items returns every shop item in catalog order.
func (c *Catalog) Items() []models.Item {
	return append([]models.Item(nil), c.items...)
}

func (c *Catalog) Item(id string) (models.Item, bool) {
	i, ok := c.itemIdx[id]
	if !ok {
		return models.Item{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

// ItemsIn returns the items of a category, in the order the category lists
// them. Unknown categories yield nil.
func (c *Catalog) ItemsIn(categoryID string) []models.Item {
	for _, cat := range c.categories {
		if cat.ID != categoryID {
			continue
		}
		out := make([]models.Item, 0, len(cat.Items))
		for _, id := range cat.Items {
			out = append(out, c.items[c.itemIdx[id]])
		}
		return out
	}
	return nil
}

// Events returns the random events in evaluation order.
func (c *Catalog) Events() []models.RandomEvent {
	return append([]models.RandomEvent(nil), c.events...)
}
