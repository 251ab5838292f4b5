// Package scrape extracts poems from poemanalysis.com theme pages.
package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/models"
)

var (
	selPost        = cascadia.MustCompile(`[id^="post-"]`)
	selDivHeader   = cascadia.MustCompile(`div > header`)
	selDivQuote    = cascadia.MustCompile(`div > blockquote`)
	selEntryHeader = cascadia.MustCompile(`header[class="entry-header"]`)
	selEntryQuote  = cascadia.MustCompile(`blockquote[class="entry-quote"]`)
	selTitleLink   = cascadia.MustCompile(`h2[class="entry-title"] > a`)
	selPoetName    = cascadia.MustCompile(`h6[class="poet-name"]`)
	selLink        = cascadia.MustCompile(`a`)
	selParagraph   = cascadia.MustCompile(`p`)
)

// Parse returns every complete poem on the page. Poems are read per post
// first; if that finds nothing, page-wide headers and quotes are paired by position.
func Parse(body []byte) ([]models.ScrapedPoem, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	poems := byPost(doc)
	if len(poems) == 0 {
		poems = byPosition(doc)
		logger.Debug("Used positional extraction", "poems", len(poems))
	}
	if poems == nil {
		poems = []models.ScrapedPoem{}
	}
	return poems, nil
}

func byPost(doc *html.Node) []models.ScrapedPoem {
	var poems []models.ScrapedPoem
	for _, post := range selPost.MatchAll(doc) {
		quotes := grandchildren(post, selDivQuote)
		for _, header := range grandchildren(post, selDivHeader) {
			name, writer := headerFields(header)
			for _, quote := range quotes {
				p := models.ScrapedPoem{Name: name, Writer: writer, Text: quoteText(quote)}
				if complete(p) {
					poems = append(poems, p)
					break
				}
			}
		}
	}
	return poems
}

// grandchildren keeps the matches that sit directly in a div directly under post.
func grandchildren(post *html.Node, sel cascadia.Selector) []*html.Node {
	var out []*html.Node
	for _, n := range sel.MatchAll(post) {
		if n.Parent != nil && n.Parent.Parent == post {
			out = append(out, n)
		}
	}
	return out
}

func byPosition(doc *html.Node) []models.ScrapedPoem {
	headers := selEntryHeader.MatchAll(doc)
	quotes := selEntryQuote.MatchAll(doc)

	var poems []models.ScrapedPoem
	for i, header := range headers {
		if i >= len(quotes) {
			break
		}
		name, writer := headerFields(header)
		p := models.ScrapedPoem{Name: name, Writer: writer, Text: quoteText(quotes[i])}
		if complete(p) {
			poems = append(poems, p)
		}
	}
	return poems
}

func headerFields(header *html.Node) (name, writer string) {
	if a := selTitleLink.MatchFirst(header); a != nil {
		name = strings.TrimSpace(dom.TextContent(a))
	}
	if poet := selPoetName.MatchFirst(header); poet != nil {
		writer = writerName(poet)
	}
	return name, writer
}

// writerName prefers the poet link, then the text after "by ", then the whole text.
func writerName(poet *html.Node) string {
	if a := selLink.MatchFirst(poet); a != nil {
		return strings.TrimSpace(dom.TextContent(a))
	}
	full := strings.TrimSpace(dom.TextContent(poet))
	if _, after, found := strings.Cut(full, "by "); found {
		return strings.TrimSpace(after)
	}
	return full
}

func quoteText(quote *html.Node) string {
	var lines []string
	for _, p := range selParagraph.MatchAll(quote) {
		if line := strings.TrimSpace(dom.TextContent(p)); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func complete(p models.ScrapedPoem) bool {
	return p.Name != "" && p.Writer != "" && p.Text != ""
}
