package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/tatianab/researcher-life/internal/catalog"
	"github.com/tatianab/researcher-life/internal/engine"
	"github.com/tatianab/researcher-life/internal/models"
	"github.com/tatianab/researcher-life/internal/sim"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(w io.Writer, msg string) {
	success.Fprintln(w, msg)
}

func printWarn(w io.Writer, msg string) {
	warn.Fprintln(w, msg)
}

func printInfo(w io.Writer, msg string) {
	neutral.Fprintln(w, msg)
}

// rankColor approximates the hex rank palette with terminal colors.
func rankColor(r models.Rank) *color.Color {
	switch r {
	case models.RankS, models.RankA:
		return color.New(color.FgMagenta, color.Bold)
	case models.RankB, models.RankC:
		return danger
	case models.RankD:
		return warn
	case models.RankE:
		return success
	case models.RankF:
		return color.New(color.FgBlue)
	}
	return color.New(color.FgHiBlack)
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	accent.Fprintln(w, "Actions")
	for _, a := range cat.Actions() {
		cost := fmt.Sprintf("-%d stamina", a.StaminaCost)
		if a.IsRest() {
			cost = "recovers stamina"
		}
		fmt.Fprintf(w, "  %-12s %-20s %-16s %s", a.ID, a.Name, cost, a.Effect)
		if a.MoneyReward > 0 {
			fmt.Fprintf(w, " %s", models.FormatMoneyDelta(a.MoneyReward))
		}
		fmt.Fprintln(w)
	}

	for _, c := range cat.Categories() {
		fmt.Fprintln(w)
		accent.Fprintf(w, "Shop: %s\n", c.Name)
		for _, it := range cat.ItemsIn(c.ID) {
			fmt.Fprintf(w, "  %s %-18s %10s  %s\n", it.Icon, it.Name, models.FormatMoney(it.Price), it.Effect)
		}
	}

	fmt.Fprintln(w)
	accent.Fprintln(w, "Random events")
	for _, ev := range cat.Events() {
		trigger := "any action"
		if ev.TriggerAction != "" {
			trigger = "after " + ev.TriggerAction
		}
		if ev.Condition != nil {
			trigger += fmt.Sprintf(", %s %s %d", ev.Condition.Stat, ev.Condition.Op, ev.Condition.Value)
		}
		fmt.Fprintf(w, "  %-24s %3.0f%%  %-28s %s\n", ev.Title, ev.Probability*100, trigger, ev.Effect)
	}
}

func printReport(w io.Writer, run int, r sim.Report, quiet bool) {
	accent.Fprintf(w, "Run %d (%s policy)\n", run, r.Policy)
	if !quiet {
		for _, t := range r.Turns {
			fmt.Fprintf(w, "  %s\n", t.Summary)
			if t.Event != "" {
				warn.Fprintf(w, "    event: %s\n", t.Event)
			}
		}
	}
	s := r.Final
	fmt.Fprintf(w, "  Reached week %d with %d stamina, %s and %d%% research. %d events fired.\n",
		s.Week, s.Stamina, models.FormatMoney(s.Money), s.Research, r.EventCount())
	for _, v := range engine.StatViews(s) {
		fmt.Fprintf(w, "  %s %-14s %3d\n", rankColor(v.Rank).Sprint(v.Rank), v.Name, v.Value)
	}
}
