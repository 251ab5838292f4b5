package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/moodverse/internal/cli"
	"github.com/julianstephens/moodverse/internal/keyring"
	"github.com/julianstephens/moodverse/internal/storage"
	"github.com/julianstephens/moodverse/internal/storage/postgres"
)

// ConnectionSetCmd stores a PostgreSQL connection string in the OS keyring
type ConnectionSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *ConnectionSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgresDSN(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring is an acceptable home for a password
		fmt.Fprintln(ctx.Out, "Warning: connection string contains a password; it will be kept in the OS keyring.")
	}

	if err := keyring.SaveDSN(cmd.ConnectionString); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "Connection string stored in OS keyring")
	fmt.Fprintln(ctx.Out, "  Use it with --db keyring or MOODVERSE_DB=keyring")
	return nil
}

type ConnectionShowCmd struct{}

func (cmd *ConnectionShowCmd) Run(ctx *cli.Context) error {
	dsn, err := keyring.LoadDSN()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring. Use 'moodverse connection set' to store one")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, maskPassword(dsn))
	return nil
}

type ConnectionDeleteCmd struct{}

func (cmd *ConnectionDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.ForgetDSN(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Fprintln(ctx.Out, "Connection string deleted from OS keyring")
	return nil
}

func maskPassword(connStr string) string {
	if storage.IsPostgresDSN(connStr) {
		scheme, rest, _ := strings.Cut(connStr, "://")
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return connStr
		}
		if user, _, hasPassword := strings.Cut(rest[:at], ":"); hasPassword {
			return scheme + "://" + user + ":****" + rest[at:]
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if k, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
