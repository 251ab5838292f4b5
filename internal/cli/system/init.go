package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/moodverse/internal/backup"
	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Snapshot and delete an existing SQLite poem database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	if _, isFile := store.(*sqlite.Store); c.Force && isFile {
		dbPath := store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if snap, err := backup.NewManager(dbPath).Create(); err != nil {
				fmt.Fprintf(ctx.Out, "Warning: could not snapshot existing database: %v\n", err)
			} else {
				fmt.Fprintf(ctx.Out, "Saved existing database as: %s\n", snap)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(ctx.Out, "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized moodverse storage at: %s\n", store.GetConfigPath())
	return nil
}
