package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/keyring"
	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/storage"
)

type DoctorCmd struct {
	Offline bool `help:"Skip the poem service check."`
}

type check struct {
	name string
	// warnOnly checks never fail the run
	warnOnly bool
	run      func() error
	skip     string
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	store, storeErr := ctx.LoadStore()
	skipDB := ""
	if storeErr != nil {
		skipDB = "database not reachable"
	}

	checks := []check{
		{name: "Database reachable", run: func() error { return storeErr }},
		{name: "Schema version", skip: skipDB, run: func() error { return checkSchema(bg, store) }},
		{name: "Poems for every mood", warnOnly: true, skip: skipDB, run: func() error { return checkPoems(bg, store) }},
		{name: "OS keyring", warnOnly: true, run: checkKeyring},
	}
	if cmd.Offline {
		checks = append(checks, check{name: "Poem service", skip: "--offline"})
	} else {
		checks = append(checks, check{name: "Poem service", warnOnly: true, run: func() error {
			if !ctx.Poetry().IsReachable(bg) {
				return fmt.Errorf("no response from %s", ctx.PoetryURL)
			}
			return nil
		}})
	}

	hasError := false
	for _, c := range checks {
		if c.skip != "" {
			fmt.Fprintf(ctx.Out, "- %s: SKIPPED (%s)\n", c.name, c.skip)
			continue
		}
		err := c.run()
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Fprintf(ctx.Out, "✗ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkSchema(ctx context.Context, store storage.Provider) error {
	reporter, ok := store.(storage.SchemaReporter)
	if !ok {
		return nil
	}
	current, latest, err := reporter.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("database is at version %d, latest is %d (run 'moodverse init')", current, latest)
	}
	return nil
}

func checkPoems(ctx context.Context, store storage.Provider) error {
	counts, err := store.CountByValence(ctx)
	if err != nil {
		return err
	}
	for _, v := range []models.Valence{models.ValenceHappy, models.ValenceSad} {
		if counts[v] == 0 {
			return fmt.Errorf("no %q poems stored; scores mapped to it will show no poem", v)
		}
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available; use PGPASSWORD or .pgpass for PostgreSQL")
	}
	return nil
}
