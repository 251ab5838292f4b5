package poemscrape

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/importer"
	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/scrape"
)

type ScrapeCmd struct {
	URL      []string `help:"Theme page to scrape. Repeat for several pages." default:"https://poemanalysis.com/themes/new-life/" sep:"none" name:"url"`
	MoodType string   `help:"Mood type to store the poems under (happy and sad are served by the journal)." default:"new-life"`
	DBPath   string   `help:"Poem database path or PostgreSQL connection string." default:"poems.db" name:"db-path"`
	Debug    bool     `help:"Save the fetched page and print page statistics."`
	NoInsert bool     `help:"Skip database insertion, only print JSON."`
}

type pageResult struct {
	url   string
	body  []byte
	poems []models.ScrapedPoem
}

type output struct {
	Poems []models.ScrapedPoem `json:"poems"`
}

func (c *ScrapeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	fmt.Fprintf(ctx.Out, "Scraping poems from: %s\n", strings.Join(c.URL, ", "))
	fmt.Fprintf(ctx.Out, "Mood type: %s\n", c.MoodType)

	pages, err := c.scrapeAll(bg)
	if err != nil {
		return err
	}

	poems := []models.ScrapedPoem{}
	for i, p := range pages {
		if c.Debug {
			if err := c.debugPage(ctx, i, p); err != nil {
				return err
			}
		}
		poems = append(poems, p.poems...)
	}

	fmt.Fprintf(ctx.Out, "\nScraped %d poems:\n", len(poems))
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(output{Poems: poems}); err != nil {
		return fmt.Errorf("encoding poems: %w", err)
	}

	switch {
	case c.NoInsert:
		fmt.Fprintln(ctx.Out, "\nSkipping database insertion (--no-insert flag set)")
		return nil
	case len(poems) == 0:
		fmt.Fprintln(ctx.Out, "\nNo poems found to insert.")
		return nil
	}
	return c.insert(bg, ctx, poems)
}

// scrapeAll fetches every URL concurrently and keeps the results in flag order.
func (c *ScrapeCmd) scrapeAll(ctx context.Context) ([]pageResult, error) {
	fetcher := scrape.NewFetcher()
	results := make([]pageResult, len(c.URL))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxConcurrentScrapes)

	for i, u := range c.URL {
		g.Go(func() error {
			body, err := fetcher.Fetch(gctx, u)
			if err != nil {
				return fmt.Errorf("%s: %w", u, err)
			}
			poems, err := scrape.Parse(body)
			if err != nil {
				return fmt.Errorf("%s: %w", u, err)
			}
			logger.Info("Scraped page", "url", u, "poems", len(poems))
			results[i] = pageResult{url: u, body: body, poems: poems}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *ScrapeCmd) debugPage(ctx *cli.Context, i int, p pageResult) error {
	name := constants.DebugPageFile
	if len(c.URL) > 1 {
		name = fmt.Sprintf("%s-%d.html", strings.TrimSuffix(name, ".html"), i+1)
	}
	if err := scrape.SaveDebugPage(name, p.body); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Saved HTML to %s for inspection\n", name)

	stats, err := scrape.Inspect(p.body, p.url)
	if err != nil {
		return err
	}
	if stats.Title != "" {
		fmt.Fprintf(ctx.Out, "Page title: %s\n", stats.Title)
	}
	fmt.Fprintf(ctx.Out, "Found %d post IDs\n", stats.PostIDs)
	fmt.Fprintf(ctx.Out, "Found %d headers\n", stats.Headers)
	fmt.Fprintf(ctx.Out, "Found %d blockquotes\n", stats.Blockquotes)
	return nil
}

func (c *ScrapeCmd) insert(bg context.Context, ctx *cli.Context, poems []models.ScrapedPoem) error {
	banner := strings.Repeat("=", constants.SeparatorLength)
	fmt.Fprintln(ctx.Out, "\n"+banner)
	fmt.Fprintf(ctx.Out, "Inserting poems (mood_type: %s)...\n", c.MoodType)
	fmt.Fprintln(ctx.Out, banner)

	store, err := cli.OpenStore(c.DBPath, ctx.Rand)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return err
	}

	report, err := importer.Insert(bg, store, poems, c.MoodType)
	for _, name := range report.Skipped {
		fmt.Fprintf(ctx.Out, "Skipping incomplete poem: %s\n", name)
	}
	fmt.Fprintln(ctx.Out, "\nInsertion complete:")
	fmt.Fprintf(ctx.Out, "  Successfully inserted: %d poems\n", report.Inserted)
	fmt.Fprintf(ctx.Out, "  Failed: %d poems\n", report.Failed)
	return err
}
