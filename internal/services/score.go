package services

import (
	"math"

	"aoa/internal/models"
)

// CommentScore is the signed share of up reactions, in [-100, 100].
func CommentScore(up, down int) int {
	if up+down == 0 {
		return 0
	}
	raw := float64(up-down) / float64(up+down) * 100
	return clamp(int(math.Round(raw)), -100, 100)
}

type ReactionCounts struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

func (c ReactionCounts) Score() int {
	return CommentScore(c.Up, c.Down)
}

func CountReactions(rows []models.CommentReaction) map[string]ReactionCounts {
	out := make(map[string]ReactionCounts)
	for _, r := range rows {
		c := out[r.CommentID]
		switch r.Value {
		case models.ReactionUp:
			c.Up++
		case models.ReactionDown:
			c.Down++
		}
		out[r.CommentID] = c
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
