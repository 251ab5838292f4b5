package scrape

import (
	"bytes"
	"fmt"
	"net/url"
	"os"

	"github.com/go-shiori/dom"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/julianstephens/moodverse/internal/logger"
)

// Stats summarises the page structure for --debug runs.
type Stats struct {
	PostIDs     int
	Headers     int
	Blockquotes int
	Title       string
}

func Inspect(body []byte, pageURL string) (Stats, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Stats{}, fmt.Errorf("parsing HTML: %w", err)
	}

	stats := Stats{
		Headers:     len(selEntryHeader.MatchAll(doc)),
		Blockquotes: len(selEntryQuote.MatchAll(doc)),
	}
	for _, n := range selPost.MatchAll(doc) {
		if dom.GetAttribute(n, "id") != "" {
			stats.PostIDs++
		}
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return stats, fmt.Errorf("parsing page URL: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		logger.Debug("Readability could not extract page", "url", pageURL, "error", err)
		return stats, nil
	}
	stats.Title = article.Title
	return stats, nil
}

// SaveDebugPage writes the raw page for manual inspection.
func SaveDebugPage(path string, body []byte) error {
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("saving debug page: %w", err)
	}
	return nil
}
