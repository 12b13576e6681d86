package models

import (
	"fmt"
	"strings"
)

// Stat identifies one value a researcher carries. The first NumRanked stats
// are the ranked skills; Money, Research and Stamina are resources that share
// the same effect machinery.
type Stat int

const (
	Writing Stat = iota
	Coding
	Presentation
	Collaboration
	Power
	Catchup
	English
	Communication
	Insight
	Money
	Research
	Stamina

	numStats
)

// NumRanked is the number of ranked skill stats.
const NumRanked = int(Money)

const (
	MinStat       = 0
	MaxStat       = 100
	MaxStamina    = 100
	StartingMoney = 11350

	InitialStatMin = 10
	InitialStatMax = 20
)

var statKeys = [numStats]string{
	Writing:       "writing",
	Coding:        "coding",
	Presentation:  "presentation",
	Collaboration: "collaboration",
	Power:         "power",
	Catchup:       "catchup",
	English:       "english",
	Communication: "communication",
	Insight:       "insight",
	Money:         "money",
	Research:      "research",
	Stamina:       "stamina",
}

var statNames = [numStats]string{
	Writing:       "Paper Writing",
	Coding:        "Coding",
	Presentation:  "Presentation",
	Collaboration: "Collaboration",
	Power:         "Power",
	Catchup:       "Tech Catch-up",
	English:       "English",
	Communication: "Communication",
	Insight:       "Insight",
	Money:         "Money",
	Research:      "Research",
	Stamina:       "Stamina",
}

// RankedStats lists the ranked skills in display order.
func RankedStats() []Stat {
	out := make([]Stat, NumRanked)
	for i := range out {
		out[i] = Stat(i)
	}
	return out
}

// ParseStat maps a key such as "writing" to its Stat.
func ParseStat(key string) (Stat, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range statKeys {
		if k == key {
			return Stat(i), true
		}
	}
	return 0, false
}

func (s Stat) String() string {
	if s < 0 || s >= numStats {
		return "unknown"
	}
	return statKeys[s]
}

func (s *Stat) UnmarshalText(text []byte) error {
	v, ok := ParseStat(string(text))
	if !ok {
		return fmt.Errorf("unknown stat %q", text)
	}
	*s = v
	return nil
}

// DisplayName is the human readable label of the stat.
func (s Stat) DisplayName() string {
	if s < 0 || s >= numStats {
		return "Unknown"
	}
	return statNames[s]
}

func (s Stat) Ranked() bool { return s >= 0 && int(s) < NumRanked }

// Bounds returns the range a stat is clamped into after every mutation.
// Money has no upper bound.
func (s Stat) Bounds() Bounds {
	switch s {
	case Money:
		return Bounds{Min: 0, Max: Unbounded}
	case Stamina:
		return Bounds{Min: 0, Max: MaxStamina}
	default:
		return Bounds{Min: MinStat, Max: MaxStat}
	}
}

// StatVector holds the nine ranked skills.
type StatVector [NumRanked]int

func (v StatVector) Get(s Stat) int {
	if !s.Ranked() {
		return 0
	}
	return v[s]
}

// RandomStats draws every skill uniformly from [InitialStatMin, InitialStatMax].
func RandomStats(rng interface{ IntN(int) int }) StatVector {
	var v StatVector
	for i := range v {
		v[i] = InitialStatMin + rng.IntN(InitialStatMax-InitialStatMin+1)
	}
	return v
}

// Rank is a letter grade from S (best) to G (worst).
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
	RankE Rank = "E"
	RankF Rank = "F"
	RankG Rank = "G"
)

// RankOf grades a stat value.
func RankOf(value int) Rank {
	switch {
	case value >= 100:
		return RankS
	case value >= 80:
		return RankA
	case value >= 70:
		return RankB
	case value >= 60:
		return RankC
	case value >= 50:
		return RankD
	case value >= 40:
		return RankE
	case value >= 30:
		return RankF
	default:
		return RankG
	}
}

// Color is the display color of a rank as a hex string.
func (r Rank) Color() string {
	switch r {
	case RankS:
		return "#F9A8D4"
	case RankA:
		return "#DB2777"
	case RankB:
		return "#EF4444"
	case RankC:
		return "#EA580C"
	case RankD:
		return "#FDBA74"
	case RankE:
		return "#84CC16"
	case RankF:
		return "#93C5FD"
	case RankG:
		return "#6B7280"
	default:
		return "#D1D5DB"
	}
}
