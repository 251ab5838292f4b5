package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/models"
)

const (
	MsgNoPoem         = "No poem found in database for this mood."
	MsgNoRecords      = "No records to display."
	MsgFetching       = "Fetching inspiration..."
	MsgFetchFailed    = "Unable to fetch poem. Please try again later."
	MsgInvalidChoice  = "Invalid choice! Please choose a valid option (1-5)."
	MsgReturnToMenu   = "Press any key to return to menu..."
	MsgLowStreak      = "You've had three consecutive low moods. Consider reflecting on your feelings."
	MsgHighStreak     = "You've had three consecutive high moods. Great job staying positive!"
	recordAddedFormat = "Record added: %s - Mood: %d"
)

func Separator() string {
	return strings.Repeat("-", constants.SeparatorLength)
}

// PoemHeading is the block printed above any poem body.
func PoemHeading(title, author string) []string {
	return []string{Separator(), "Poem: " + title, "By: " + author, ""}
}

// Truncate shortens line to maxWidth runes, ending in "...". maxWidth <= 0 disables it.
func Truncate(line string, maxWidth int) string {
	if maxWidth <= 0 {
		return line
	}
	r := []rune(line)
	if len(r) <= maxWidth {
		return line
	}
	if maxWidth <= 3 {
		return string(r[:maxWidth])
	}
	return string(r[:maxWidth-3]) + "..."
}

// PreviewLines returns at most PoemPreviewLines lines of a stored poem, truncated to maxWidth.
func PreviewLines(p models.PoemRecord, maxWidth int) []string {
	return fitLines(p.Text, constants.PoemPreviewLines, maxWidth)
}

// fitLines truncates each line and keeps at most limit of them. limit <= 0 keeps all.
func fitLines(lines []string, limit, maxWidth int) []string {
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Truncate(l, maxWidth)
	}
	return out
}

// TrendMessage is empty for NoTrend.
func TrendMessage(t models.Trend) string {
	switch t {
	case models.LowStreak:
		return MsgLowStreak
	case models.HighStreak:
		return MsgHighStreak
	default:
		return ""
	}
}

func RecordAdded(r models.MoodRecord) string {
	return fmt.Sprintf(recordAddedFormat, r.Date, r.Score)
}

func RecordLine(r models.MoodRecord) string {
	return fmt.Sprintf("%s - Mood: %d", r.Date, r.Score)
}
