package system

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/moodverse/internal/backup"
	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/storage/sqlite"
)

var errNotSQLite = errors.New("snapshots are only supported for SQLite poem databases")

// sqliteBackups returns the snapshot manager for the configured database,
// releasing the store's handle so the file can be copied or replaced.
func sqliteBackups(ctx *cli.Context) (*backup.Manager, error) {
	store, err := ctx.Store()
	if err != nil {
		return nil, err
	}
	if _, ok := store.(*sqlite.Store); !ok {
		return nil, errNotSQLite
	}
	if err := store.Close(); err != nil {
		return nil, fmt.Errorf("failed to close poem database: %w", err)
	}
	return backup.NewManager(store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (cmd *BackupCreateCmd) Run(ctx *cli.Context) error {
	m, err := sqliteBackups(ctx)
	if err != nil {
		return err
	}
	path, err := m.Create()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Snapshot written: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (cmd *BackupListCmd) Run(ctx *cli.Context) error {
	m, err := sqliteBackups(ctx)
	if err != nil {
		return err
	}
	snaps, err := m.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintf(ctx.Out, "No snapshots in %s\n", m.Dir())
		return nil
	}
	fmt.Fprintf(ctx.Out, "Snapshots in %s:\n", m.Dir())
	for _, s := range snaps {
		fmt.Fprintf(ctx.Out, "  %s  %s  %d bytes\n", filepath.Base(s.Path), s.TakenAt.Format("2006-01-02 15:04:05"), s.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Snapshot string `arg:"" help:"Snapshot file name or path. Defaults to the newest." optional:""`
}

func (cmd *BackupRestoreCmd) Run(ctx *cli.Context) error {
	m, err := sqliteBackups(ctx)
	if err != nil {
		return err
	}

	target := cmd.Snapshot
	switch {
	case target == "":
		snaps, err := m.List()
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			return fmt.Errorf("no snapshots in %s", m.Dir())
		}
		target = snaps[0].Path
	case filepath.Base(target) == target:
		target = filepath.Join(m.Dir(), target)
	}

	previous, err := m.Restore(target)
	if previous != "" {
		fmt.Fprintf(ctx.Out, "Saved current database as: %s\n", filepath.Base(previous))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Restored poem database from: %s\n", filepath.Base(target))
	return nil
}
