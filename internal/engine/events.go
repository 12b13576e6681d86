package engine

import (
	"github.com/tatianab/researcher-life/internal/models"
)

// Eligible reports whether ev may fire after actionID in state s.
func Eligible(ev models.RandomEvent, actionID string, s models.GameState) bool {
	if ev.TriggerAction != "" && ev.TriggerAction != actionID {
		return false
	}
	if ev.Condition != nil && !ev.Condition.Matches(s) {
		return false
	}
	return true
}

// EligibleEvents lists the events that may fire after actionID, in catalog order.
func (e *Engine) EligibleEvents(actionID string, s models.GameState) []models.RandomEvent {
	var out []models.RandomEvent
	for _, ev := range e.catalog.Events() {
		if Eligible(ev, actionID, s) {
			out = append(out, ev)
		}
	}
	return out
}

// PickEvent runs one Bernoulli trial per eligible event in catalog order and
// returns the first that succeeds.
func (e *Engine) PickEvent(actionID string, s models.GameState) (models.RandomEvent, bool) {
	for _, ev := range e.EligibleEvents(actionID, s) {
		if e.rng.Float64() < ev.Probability {
			e.log.Debug("event fired", "session", s.SessionID, "week", s.Week, "action", actionID, "event", ev.ID)
			return ev, true
		}
	}
	return models.RandomEvent{}, false
}

// EventResult is the outcome of a confirmed random event.
type EventResult struct {
	State        models.GameState
	Event        models.RandomEvent
	Summary      string
	StaminaDelta int
	MoneyDelta   int
}

// ApplyEvent applies a confirmed event to s. Events do not advance the week.
func (e *Engine) ApplyEvent(s models.GameState, ev models.RandomEvent) EventResult {
	next := s.Apply(ev.Effect)
	summary := "Event: " + ev.Title
	if changes := ev.Effect.Changes(); changes != "" {
		summary += " / " + changes
	}
	next.Log = append([]string{summary}, next.Log...)
	e.log.Debug("event applied", "session", s.SessionID, "week", s.Week, "event", ev.ID)
	return EventResult{
		State:        next,
		Event:        ev,
		Summary:      summary,
		StaminaDelta: next.Stamina - s.Stamina,
		MoneyDelta:   next.Money - s.Money,
	}
}
