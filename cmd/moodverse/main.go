package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/cli/journal"
	"github.com/julianstephens/moodverse/internal/cli/system"
	"github.com/julianstephens/moodverse/internal/constants"
	apperrors "github.com/julianstephens/moodverse/internal/errors"
	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/storage"
)

var CLI struct {
	cli.Globals `embed:""`

	Version kong.VersionFlag

	Tui     journal.TuiCmd     `cmd:"" help:"Launch the interactive mood journal." default:"1"`
	Poem    journal.PoemCmd    `cmd:"" help:"Print a poem matched to a mood score."`
	Inspire journal.InspireCmd `cmd:"" help:"Fetch a random poem from the poem service."`
	Stats   journal.StatsCmd   `cmd:"" help:"Show how many poems are stored per mood type."`
	Init    system.InitCmd     `cmd:"" help:"Initialize the poem database."`
	Doctor  system.DoctorCmd   `cmd:"" help:"Run diagnostics on storage and services."`

	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the SQLite poem database."`
		List    system.BackupListCmd    `cmd:"" help:"List poem database snapshots."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore the poem database from a snapshot."`
	} `cmd:"" help:"Manage SQLite poem database snapshots."`

	Connection struct {
		Set    system.ConnectionSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Show   system.ConnectionShowCmd   `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.ConnectionDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection kept in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A terminal mood journal that answers with poems"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: storage.ExpandHome(constants.DefaultConfigDir),
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("starting", "command", kctx.Command(), "db", CLI.DB)

	appCtx := cli.NewContext(CLI.Globals, os.Stdout)
	err := kctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("closing poem database", "error", cerr)
	}
	apperrors.Fatal(err)
	logger.Close()
}
