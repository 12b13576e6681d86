package engine

import "github.com/tatianab/researcher-life/internal/models"

type ActionView struct {
	Action   models.Action
	Eligible bool
}

// ActionMenu lists every action with whether s can afford it.
func (e *Engine) ActionMenu(s models.GameState) []ActionView {
	actions := e.catalog.Actions()
	out := make([]ActionView, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionView{Action: a, Eligible: CanAct(s, a)})
	}
	return out
}

type StatView struct {
	Stat  models.Stat
	Name  string
	Value int
	Rank  models.Rank
	Color string
}

// StatViews ranks every skill of s.
func StatViews(s models.GameState) []StatView {
	out := make([]StatView, 0, models.NumRanked)
	for _, st := range models.RankedStats() {
		v := s.Stats.Get(st)
		r := models.RankOf(v)
		out = append(out, StatView{Stat: st, Name: st.DisplayName(), Value: v, Rank: r, Color: r.Color()})
	}
	return out
}

type OwnedItem struct {
	Item  models.Item
	Count int
}

// InventoryView groups owned items in catalog order.
func (e *Engine) InventoryView(s models.GameState) []OwnedItem {
	var out []OwnedItem
	for _, it := range e.catalog.Items() {
		if n := s.Inventory.Count(it.ID); n > 0 {
			out = append(out, OwnedItem{Item: it, Count: n})
		}
	}
	return out
}

type ShopEntry struct {
	Item       models.Item
	Owned      int
	Affordable bool
}

// Shop lists a category's items for s. Unknown categories are empty.
func (e *Engine) Shop(s models.GameState, categoryID string) []ShopEntry {
	items := e.catalog.ItemsIn(categoryID)
	out := make([]ShopEntry, 0, len(items))
	for _, it := range items {
		out = append(out, ShopEntry{
			Item:       it,
			Owned:      s.Inventory.Count(it.ID),
			Affordable: s.Money >= it.Price,
		})
	}
	return out
}

// WeeksUntilClear counts down to the end of the run.
func (e *Engine) WeeksUntilClear(s models.GameState) int {
	return max(0, e.goalWeeks-s.Week)
}

func (e *Engine) GoalWeeks() int { return e.goalWeeks }
