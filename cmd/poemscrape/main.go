package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/cli/poemscrape"
	"github.com/julianstephens/moodverse/internal/constants"
	apperrors "github.com/julianstephens/moodverse/internal/errors"
	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/storage"
)

var CLI struct {
	poemscrape.ScrapeCmd `embed:""`

	Version kong.VersionFlag
}

func main() {
	kong.Parse(&CLI,
		kong.Name("poemscrape"),
		kong.Description("Scrape poems from a themed listing page and store them for moodverse"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: storage.ExpandHome(constants.DefaultConfigDir),
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	appCtx := cli.NewContext(cli.Globals{DB: CLI.DBPath}, os.Stdout)
	apperrors.Fatal(CLI.ScrapeCmd.Run(appCtx))
	logger.Close()
}
