package models

// MoodRecord is one validated journal entry. Score is always within [1,10].
type MoodRecord struct {
	Date  string `json:"date"` // YYYY-MM-DD format
	Score int    `json:"score"`
}

// ChartPoint is a (date, score) pair in chart order.
type ChartPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type Trend int

const (
	NoTrend Trend = iota
	LowStreak
	HighStreak
)

func (t Trend) String() string {
	switch t {
	case LowStreak:
		return "low_streak"
	case HighStreak:
		return "high_streak"
	default:
		return "no_trend"
	}
}
