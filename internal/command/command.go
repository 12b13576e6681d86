// Package command turns a line typed at the game prompt into a Command.
// Action and item names are matched exactly, by prefix, or within a small
// edit distance so that typos still resolve.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tatianab/researcher-life/internal/catalog"
)

type Kind int

const (
	Act Kind = iota
	Buy
	Use
	Shop
	Inventory
	Help
	Reset
	Quit
)

func (k Kind) String() string {
	switch k {
	case Act:
		return "act"
	case Buy:
		return "buy"
	case Use:
		return "use"
	case Shop:
		return "shop"
	case Inventory:
		return "inventory"
	case Help:
		return "help"
	case Reset:
		return "reset"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Command is a parsed prompt line. Target holds an action, item or
// category id depending on Kind. Corrected is set when Target was inferred
// from a prefix or a near miss rather than typed exactly.
type Command struct {
	Kind      Kind
	Target    string
	Corrected bool
}

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingTarget  = errors.New("missing target")
)

var keywords = map[string]Kind{
	"buy":       Buy,
	"purchase":  Buy,
	"use":       Use,
	"shop":      Shop,
	"store":     Shop,
	"inventory": Inventory,
	"inv":       Inventory,
	"items":     Inventory,
	"help":      Help,
	"?":         Help,
	"/help":     Help,
	"reset":     Reset,
	"/reset":    Reset,
	"/restart":  Reset,
	"quit":      Quit,
	"/quit":     Quit,
	"exit":      Quit,
}

// Option is one thing a phrase can resolve to.
type Option struct {
	ID      string
	Aliases []string
}

type Parser struct {
	actions    []Option
	items      []Option
	categories []Option
}

func NewParser(cat *catalog.Catalog) *Parser {
	p := &Parser{}
	for _, a := range cat.Actions() {
		p.actions = append(p.actions, Option{ID: a.ID, Aliases: []string{a.Name}})
	}
	for _, it := range cat.Items() {
		p.items = append(p.items, Option{ID: it.ID, Aliases: []string{it.Name}})
	}
	for _, c := range cat.Categories() {
		p.categories = append(p.categories, Option{ID: c.ID, Aliases: []string{c.Name}})
	}
	return p
}

func (p *Parser) Parse(input string) (Command, error) {
	text := normalise(input)
	if text == "" {
		return Command{}, ErrEmpty
	}
	head, rest, _ := strings.Cut(text, " ")
	kind, isKeyword := keywords[head]
	if !isKeyword {
		id, corrected, ok := Match(p.actions, text)
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
		}
		return Command{Kind: Act, Target: id, Corrected: corrected}, nil
	}

	switch kind {
	case Buy, Use:
		if rest == "" {
			return Command{}, fmt.Errorf("%w: %s what?", ErrMissingTarget, head)
		}
		id, corrected, ok := Match(p.items, rest)
		if !ok {
			return Command{}, fmt.Errorf("%w: no item called %q", ErrUnknownCommand, rest)
		}
		return Command{Kind: kind, Target: id, Corrected: corrected}, nil
	case Shop:
		if rest == "" {
			return Command{Kind: Shop}, nil
		}
		id, corrected, ok := Match(p.categories, rest)
		if !ok {
			return Command{}, fmt.Errorf("%w: no shop category %q", ErrUnknownCommand, rest)
		}
		return Command{Kind: Shop, Target: id, Corrected: corrected}, nil
	default:
		return Command{Kind: kind}, nil
	}
}

// Match resolves text against options. An exact id or alias wins, then a
// unique prefix, then the closest phrase within the edit distance limit.
func Match(options []Option, text string) (id string, corrected bool, ok bool) {
	text = normalise(text)
	if text == "" {
		return "", false, false
	}

	for _, o := range options {
		for _, alias := range phrases(o) {
			if alias == text {
				return o.ID, false, true
			}
		}
	}

	if len(text) >= 2 {
		prefixHit := ""
		for _, o := range options {
			for _, alias := range phrases(o) {
				if strings.HasPrefix(alias, text) {
					if prefixHit != "" && prefixHit != o.ID {
						prefixHit = "\x00"
					} else if prefixHit == "" {
						prefixHit = o.ID
					}
					break
				}
			}
		}
		if prefixHit != "" && prefixHit != "\x00" {
			return prefixHit, true, true
		}
	}

	best, bestDist := "", -1
	for _, o := range options {
		for _, alias := range phrases(o) {
			dist := levenshtein.ComputeDistance(text, alias)
			if dist > levenshteinLimit(len(alias)) {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				best, bestDist = o.ID, dist
			}
		}
	}
	if bestDist < 0 {
		return "", false, false
	}
	return best, true, true
}

func phrases(o Option) []string {
	out := []string{normalise(o.ID), normalise(strings.ReplaceAll(o.ID, "_", " "))}
	for _, a := range o.Aliases {
		if n := normalise(a); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
