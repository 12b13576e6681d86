// Package sim plays the game without a human, for balance checks and smoke
// runs from the command line.
package sim

import (
	"errors"
	"fmt"

	"github.com/tatianab/researcher-life/internal/engine"
	"github.com/tatianab/researcher-life/internal/models"
	"github.com/tatianab/researcher-life/internal/random"
)

// Policy picks the next action id for a state.
type Policy interface {
	Name() string
	Choose(e *engine.Engine, s models.GameState) string
}

// Greedy trains the weakest skill it can afford and rests otherwise. It
// keeps a stamina reserve so it can always follow up.
type Greedy struct {
	Reserve int
}

func (g Greedy) Name() string { return "greedy" }

func (g Greedy) Choose(e *engine.Engine, s models.GameState) string {
	best, bestScore := models.RestActionID, -1
	for _, v := range e.ActionMenu(s) {
		a := v.Action
		if a.IsRest() || !v.Eligible || s.Stamina-a.StaminaCost < g.Reserve {
			continue
		}
		score := 0
		for _, d := range a.Effect {
			if d.Key.Ranked() && d.Amount > 0 {
				score += d.Amount * (models.MaxStat - s.Stats.Get(d.Key))
			}
		}
		if a.MoneyReward > 0 && s.Money < models.StartingMoney {
			score += a.MoneyReward
		}
		if score > bestScore {
			best, bestScore = a.ID, score
		}
	}
	return best
}

// Random picks uniformly among the eligible actions.
type Random struct {
	Rng random.Source
}

func (r Random) Name() string { return "random" }

func (r Random) Choose(e *engine.Engine, s models.GameState) string {
	var eligible []string
	for _, v := range e.ActionMenu(s) {
		if v.Eligible {
			eligible = append(eligible, v.Action.ID)
		}
	}
	return eligible[r.Rng.IntN(len(eligible))]
}

// Turn records one simulated week.
type Turn struct {
	Week    int
	Action  string
	Summary string
	Event   string
}

type Report struct {
	Policy string
	Turns  []Turn
	Final  models.GameState
}

// EventCount counts the turns on which a random event fired.
func (r Report) EventCount() int {
	n := 0
	for _, t := range r.Turns {
		if t.Event != "" {
			n++
		}
	}
	return n
}

// Run plays weeks turns from a fresh game, accepting every random event.
func Run(e *engine.Engine, p Policy, weeks int) (Report, error) {
	s := e.NewGame()
	report := Report{Policy: p.Name()}
	for i := 0; i < weeks; i++ {
		id := p.Choose(e, s)
		res, err := e.Act(s, id)
		if errors.Is(err, engine.ErrInsufficientStamina) {
			res, err = e.Act(s, models.RestActionID)
		}
		if err != nil {
			return report, fmt.Errorf("week %d: %w", s.Week, err)
		}
		turn := Turn{Week: s.Week, Action: res.Action.ID, Summary: res.Summary}
		s = res.State
		if ev, ok := e.PickEvent(res.Action.ID, s); ok {
			s = e.ApplyEvent(s, ev).State
			turn.Event = ev.Title
		}
		report.Turns = append(report.Turns, turn)
	}
	report.Final = s
	return report, nil
}
