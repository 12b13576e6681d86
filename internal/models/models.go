package models

import "slices"

// Action is one entry of the weekly action menu.
type Action struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Effect      Effect `yaml:"effect"`
	StaminaCost int    `yaml:"stamina_cost"`
	MoneyReward int    `yaml:"money_reward,omitempty"`
}

// RestActionID is the one action that recovers stamina instead of spending it.
const RestActionID = "rest"

func (a Action) IsRest() bool { return a.ID == RestActionID }

// Item is a purchasable shop entry. Duration is informational only: an item
// applies its effect once, immediately, when used.
type Item struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Effect      Effect `yaml:"effect"`
	Price       int    `yaml:"price"`
	Duration    int    `yaml:"duration"`
	Icon        string `yaml:"icon"`
}

// Category groups shop items by id.
type Category struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Condition gates a random event on a stat threshold.
type Condition struct {
	Stat  Stat       `yaml:"stat"`
	Op    Comparator `yaml:"op"`
	Value int        `yaml:"value"`
}

// RandomEvent may fire after a turn. An empty TriggerAction makes the event
// eligible after any action.
type RandomEvent struct {
	ID            string     `yaml:"id"`
	Title         string     `yaml:"title"`
	Description   string     `yaml:"description"`
	Effect        Effect     `yaml:"effect"`
	Probability   float64    `yaml:"probability"`
	TriggerAction string     `yaml:"trigger_action,omitempty"`
	Condition     *Condition `yaml:"condition,omitempty"`
}

// Inventory is a multiset of owned item ids.
type Inventory []string

// Count returns how many instances of id are owned.
func (inv Inventory) Count(id string) int {
	n := 0
	for _, v := range inv {
		if v == id {
			n++
		}
	}
	return n
}

// Add returns a copy of inv holding one more instance of id.
func (inv Inventory) Add(id string) Inventory {
	out := make(Inventory, len(inv), len(inv)+1)
	copy(out, inv)
	return append(out, id)
}

// Remove returns a copy of inv with the first instance of id removed.
func (inv Inventory) Remove(id string) (Inventory, bool) {
	i := slices.Index(inv, id)
	if i < 0 {
		return inv, false
	}
	out := make(Inventory, 0, len(inv)-1)
	out = append(out, inv[:i]...)
	return append(out, inv[i+1:]...), true
}

// GameState is the whole of one running game.
type GameState struct {
	SessionID string
	Stats     StatVector
	Research  int
	Stamina   int
	Money     int
	Week      int
	// Log holds turn summaries, newest first.
	Log       []string
	Inventory Inventory
}

// Value reads any stat, ranked or resource.
func (s GameState) Value(stat Stat) int {
	switch stat {
	case Money:
		return s.Money
	case Research:
		return s.Research
	case Stamina:
		return s.Stamina
	default:
		return s.Stats.Get(stat)
	}
}

func (s GameState) values() []int {
	vals := make([]int, numStats)
	copy(vals, s.Stats[:])
	vals[Money] = s.Money
	vals[Research] = s.Research
	vals[Stamina] = s.Stamina
	return vals
}

// Apply returns a copy of s with every delta of e added and clamped.
func (s GameState) Apply(e Effect) GameState {
	vals := ApplyClamped(s.values(), []Delta[Stat](e), Stat.Bounds)
	out := s.Clone()
	copy(out.Stats[:], vals[:NumRanked])
	out.Money = vals[Money]
	out.Research = vals[Research]
	out.Stamina = vals[Stamina]
	return out
}

// Clone returns a copy that shares no slices with s.
func (s GameState) Clone() GameState {
	out := s
	out.Log = slices.Clone(s.Log)
	out.Inventory = slices.Clone(s.Inventory)
	return out
}

// Matches reports whether the condition holds against s.
func (c Condition) Matches(s GameState) bool {
	return c.Op.Compare(s.Value(c.Stat), c.Value)
}
