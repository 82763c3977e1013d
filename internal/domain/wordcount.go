package domain

import (
	"math"
	"strings"
)

// WordCount returns the number of whitespace-delimited words in text.
// Empty and whitespace-only text count as zero.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Progress describes word count progress toward the daily goal
type Progress struct {
	Words   int
	Goal    int
	Percent int     // Rounded, may exceed 100
	Ratio   float64 // Clamped to [0, 1] for progress bars
}

// NewProgress computes progress for words against goal.
// A non-positive goal is treated as DefaultDailyGoal.
func NewProgress(words, goal int) Progress {
	if goal <= 0 {
		goal = DefaultDailyGoal
	}
	ratio := float64(words) / float64(goal)
	return Progress{
		Words:   words,
		Goal:    goal,
		Percent: int(math.Round(ratio * 100)),
		Ratio:   math.Min(math.Max(ratio, 0), 1),
	}
}
