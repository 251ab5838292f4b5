// Package trend classifies the tail of a mood history.
package trend

import (
	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/models"
)

// Classify looks at the most recent StreakWindow records in insertion order.
// A score equal to StreakPivot belongs to neither streak.
func Classify(history []models.MoodRecord) models.Trend {
	if len(history) < constants.StreakWindow {
		return models.NoTrend
	}

	allLow, allHigh := true, true
	for _, r := range history[len(history)-constants.StreakWindow:] {
		if r.Score >= constants.StreakPivot {
			allLow = false
		}
		if r.Score <= constants.StreakPivot {
			allHigh = false
		}
	}

	switch {
	case allLow:
		return models.LowStreak
	case allHigh:
		return models.HighStreak
	default:
		return models.NoTrend
	}
}
