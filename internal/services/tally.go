package services

import (
	"math"

	"aoa/internal/models"
)

type Dominance string

const (
	Balanced      Dominance = "balanced"
	LeftDominant  Dominance = "left"
	RightDominant Dominance = "right"
)

const (
	// DominanceBand is the relative gap under which a prompt stays balanced.
	DominanceBand = 0.12
	// HeatVotes is the vote count a balanced prompt must exceed to run hot.
	HeatVotes = 25
)

// Tally is the left/right count for one prompt.
type Tally struct {
	Left  int
	Right int
}

// NewTally counts choices; anything other than 0 or 1 is ignored.
func NewTally(choices []int) Tally {
	var t Tally
	for _, c := range choices {
		t.add(c)
	}
	return t
}

func TallyOf(votes []models.Vote) Tally {
	var t Tally
	for _, v := range votes {
		t.add(v.Choice)
	}
	return t
}

func (t *Tally) add(choice int) {
	switch choice {
	case models.ChoiceLeft:
		t.Left++
	case models.ChoiceRight:
		t.Right++
	}
}

func (t Tally) Total() int {
	return t.Left + t.Right
}

// LeftRatio is the left share of the bar, 0.5 when nobody has voted.
func (t Tally) LeftRatio() float64 {
	total := t.Total()
	if total == 0 {
		return 0.5
	}
	return float64(t.Left) / float64(total)
}

func (t Tally) Dominance() Dominance {
	total := t.Total()
	if total == 0 {
		return Balanced
	}
	diff := math.Abs(float64(t.Left-t.Right)) / float64(total)
	if diff < DominanceBand {
		return Balanced
	}
	if t.Left > t.Right {
		return LeftDominant
	}
	return RightDominant
}

// Heat marks a large prompt stuck near parity.
func (t Tally) Heat() bool {
	return t.Dominance() == Balanced && t.Total() > HeatVotes
}

func (t Tally) LeftPercent() float64 {
	return math.Round(t.LeftRatio()*1000) / 10
}

func (t Tally) RightPercent() float64 {
	return math.Round((1-t.LeftRatio())*1000) / 10
}

// TallySummary is the JSON shape returned after a vote.
type TallySummary struct {
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Total     int       `json:"total"`
	LeftRatio float64   `json:"left_ratio"`
	Dominance Dominance `json:"dominance"`
	Heat      bool      `json:"heat"`
}

func (t Tally) Summary() TallySummary {
	return TallySummary{
		Left:      t.Left,
		Right:     t.Right,
		Total:     t.Total(),
		LeftRatio: t.LeftRatio(),
		Dominance: t.Dominance(),
		Heat:      t.Heat(),
	}
}

// TallyByPost groups votes per post. Every requested id gets an entry.
func TallyByPost(postIDs []string, votes []models.Vote) map[string]Tally {
	out := make(map[string]Tally, len(postIDs))
	for _, id := range postIDs {
		out[id] = Tally{}
	}
	for _, v := range votes {
		t, ok := out[v.PostID]
		if !ok {
			continue
		}
		t.add(v.Choice)
		out[v.PostID] = t
	}
	return out
}
