// Package engine resolves weekly turns: actions, random events and item
// purchases and uses. Every operation takes the current GameState by value
// and returns the next one; rejected operations return the input unchanged
// together with a sentinel error.
//
// An Engine is not safe for concurrent use because it draws from a shared
// random source. Run one Engine per session.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tatianab/researcher-life/internal/catalog"
	"github.com/tatianab/researcher-life/internal/models"
	"github.com/tatianab/researcher-life/internal/random"
)

// DefaultGoalWeeks is the length of a full run.
const DefaultGoalWeeks = 52

var (
	ErrUnknownAction       = errors.New("unknown action")
	ErrInsufficientStamina = errors.New("insufficient stamina")
	ErrUnknownItem         = errors.New("unknown item")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrItemNotOwned        = errors.New("item not owned")
)

type Engine struct {
	catalog   *catalog.Catalog
	rng       random.Source
	log       *slog.Logger
	goalWeeks int
}

func New(cat *catalog.Catalog, rng random.Source, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:   cat,
		rng:       rng,
		log:       logger,
		goalWeeks: DefaultGoalWeeks,
	}
}

// WithGoalWeeks sets the run length used by WeeksUntilClear.
func (e *Engine) WithGoalWeeks(weeks int) *Engine {
	if weeks > 0 {
		e.goalWeeks = weeks
	}
	return e
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// NewGame starts a session with freshly rolled stats.
func (e *Engine) NewGame() models.GameState {
	s := models.GameState{
		SessionID: uuid.NewString(),
		Stats:     models.RandomStats(e.rng),
		Stamina:   models.MaxStamina,
		Money:     models.StartingMoney,
		Week:      1,
	}
	e.log.Debug("new game", "session", s.SessionID, "stats", s.Stats)
	return s
}

// Reset discards s and starts over.
func (e *Engine) Reset(s models.GameState) models.GameState {
	e.log.Debug("reset game", "session", s.SessionID, "week", s.Week)
	return e.NewGame()
}

// StatChange is one ranked stat that moved during a turn.
type StatChange struct {
	Stat   models.Stat
	Before int
	After  int
}

func (c StatChange) Delta() int { return c.After - c.Before }

// TurnResult is what a resolved turn hands to the presentation layer.
type TurnResult struct {
	State        models.GameState
	Action       models.Action
	Summary      string
	Changes      []StatChange
	StaminaDelta int
	MoneyDelta   int
}

// StaminaRecovery is how much stamina resting restores at the given power.
func StaminaRecovery(power int) int {
	return (10*models.MaxStat + power*20) / models.MaxStat
}

// CanAct reports whether s has the stamina a is gated on.
func CanAct(s models.GameState, a models.Action) bool {
	return a.IsRest() || s.Stamina >= a.StaminaCost
}

// Act resolves the catalog action with the given id.
func (e *Engine) Act(s models.GameState, actionID string) (TurnResult, error) {
	a, ok := e.catalog.Action(actionID)
	if !ok {
		return TurnResult{State: s}, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}
	return e.ResolveTurn(s, a)
}

// ResolveTurn applies one week of action a to s.
func (e *Engine) ResolveTurn(s models.GameState, a models.Action) (TurnResult, error) {
	if !CanAct(s, a) {
		e.log.Debug("turn rejected", "session", s.SessionID, "week", s.Week, "action", a.ID,
			"stamina", s.Stamina, "cost", a.StaminaCost)
		return TurnResult{State: s, Action: a}, ErrInsufficientStamina
	}

	next := s.Apply(a.Effect)
	if a.IsRest() {
		recovery := StaminaRecovery(s.Stats.Get(models.Power))
		next.Stamina = models.Clamp(next.Stamina+recovery, 0, models.MaxStamina)
	} else {
		next.Stamina = max(0, next.Stamina-a.StaminaCost)
	}
	if a.MoneyReward > 0 {
		next.Money += a.MoneyReward
	}
	next.Week = s.Week + 1

	summary := fmt.Sprintf("Week %d: %s", s.Week, a.Name)
	if changes := a.Effect.Changes(); changes != "" {
		summary += " / " + changes
	}
	next.Log = append([]string{summary}, next.Log...)

	res := TurnResult{
		State:        next,
		Action:       a,
		Summary:      summary,
		Changes:      diffStats(s.Stats, next.Stats),
		StaminaDelta: next.Stamina - s.Stamina,
		MoneyDelta:   next.Money - s.Money,
	}
	e.log.Debug("turn resolved", "session", s.SessionID, "week", s.Week, "action", a.ID,
		"stamina", next.Stamina, "money", next.Money)
	return res, nil
}

func diffStats(before, after models.StatVector) []StatChange {
	var out []StatChange
	for _, st := range models.RankedStats() {
		if before.Get(st) != after.Get(st) {
			out = append(out, StatChange{Stat: st, Before: before.Get(st), After: after.Get(st)})
		}
	}
	return out
}

// Describe renders the payload of a turn for a notification panel.
func (r TurnResult) Describe() string {
	var b strings.Builder
	b.WriteString(r.Action.Name)
	for _, c := range r.Changes {
		fmt.Fprintf(&b, "\n  %s %d -> %d (%+d)", c.Stat.DisplayName(), c.Before, c.After, c.Delta())
	}
	if r.StaminaDelta != 0 {
		fmt.Fprintf(&b, "\n  Stamina %+d", r.StaminaDelta)
	}
	if r.MoneyDelta != 0 {
		fmt.Fprintf(&b, "\n  Money %s", models.FormatMoneyDelta(r.MoneyDelta))
	}
	return b.String()
}
