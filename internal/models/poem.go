package models

import (
	"strings"
	"time"
)

// Valence is the emotional polarity label a poem is stored under.
// The scraper may store other mood-type labels too; only Happy and Sad are matched to scores.
type Valence string

const (
	ValenceHappy Valence = "happy"
	ValenceSad   Valence = "sad"
)

// PoemRecord is a poem read back from the local store.
type PoemRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"poem_name"`
	Author    string    `json:"writer_name"`
	Text      []string  `json:"poem_text"`
	Valence   Valence   `json:"mood_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Body joins the poem lines the way they are persisted.
func (p PoemRecord) Body() string {
	return strings.Join(p.Text, "\n")
}

// SplitLines splits a persisted poem body back into its lines.
func SplitLines(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

// ExternalPoem is a poem retrieved from the remote poem service. It is never persisted.
type ExternalPoem struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	LineCount int      `json:"linecount"`
	Lines     []string `json:"lines"`
}

// ScrapedPoem is the output contract of the page scraper.
type ScrapedPoem struct {
	Name   string `json:"poem_name"`
	Writer string `json:"writer_name"`
	Text   string `json:"poem_text"`
}
