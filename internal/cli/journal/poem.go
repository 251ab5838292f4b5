package journal

import (
	"context"
	"fmt"
	"sort"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/session"
	"github.com/julianstephens/moodverse/internal/tui"
)

type PoemCmd struct {
	Score string `help:"Mood score from 1 to 10." required:""`
}

func (c *PoemCmd) Run(ctx *cli.Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}

	sess := session.New(store, nil, ctx.Now())
	out := sess.RecordMood(context.Background(), "", c.Score)
	if !out.Accepted {
		return out.Err
	}

	if out.Poem == nil {
		fmt.Fprintln(ctx.Out, tui.MsgNoPoem)
		return nil
	}
	printPoem(ctx, out.Poem.Name, out.Poem.Author, out.Poem.Text)
	return nil
}

type InspireCmd struct{}

func (c *InspireCmd) Run(ctx *cli.Context) error {
	sess := session.New(nil, ctx.Poetry(), ctx.Now())

	poem, ok := sess.Inspiration(context.Background())
	if !ok {
		fmt.Fprintln(ctx.Out, tui.MsgFetchFailed)
		return nil
	}
	printPoem(ctx, poem.Title, poem.Author, poem.Lines)
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	store, err := ctx.LoadStore()
	if err != nil {
		return err
	}

	counts, err := store.CountByValence(context.Background())
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Fprintln(ctx.Out, "No poems stored yet. Run poemscrape to import some.")
		return nil
	}

	labels := make([]string, 0, len(counts))
	total := 0
	for v, n := range counts {
		labels = append(labels, string(v))
		total += n
	}
	sort.Strings(labels)

	fmt.Fprintf(ctx.Out, "Poems in %s:\n", store.GetConfigPath())
	for _, l := range labels {
		fmt.Fprintf(ctx.Out, "  %-12s %d\n", l, counts[models.Valence(l)])
	}
	fmt.Fprintf(ctx.Out, "  %-12s %d\n", "total", total)
	return nil
}

func printPoem(ctx *cli.Context, title, author string, lines []string) {
	for _, l := range tui.PoemHeading(title, author) {
		fmt.Fprintln(ctx.Out, l)
	}
	for _, l := range lines {
		fmt.Fprintln(ctx.Out, l)
	}
}
