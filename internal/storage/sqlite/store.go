package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/migration"
	"github.com/julianstephens/moodverse/internal/storage"
	"github.com/julianstephens/moodverse/migrations"
)

type Store struct {
	*storage.PoemTable
	path string
	db   *sql.DB
}

// NewStore creates a SQLite poem store at path. rng drives random poem selection;
// nil uses the global source.
func NewStore(path string, rng *rand.Rand) *Store {
	return &Store{
		PoemTable: &storage.PoemTable{Bind: storage.QuestionBind, Rand: rng},
		path:      storage.ExpandHome(path),
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("poem store not found at %s, run 'moodverse init' or 'poemscrape' first", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	if err := s.validateSchemaVersion(); err != nil {
		return err
	}
	exists, err := s.tableExists("poems")
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if !exists {
		return fmt.Errorf("no poems table in %s, run 'moodverse init' or 'poemscrape' first", s.path)
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the max(id)+1 insert serialized.
	db.SetMaxOpenConns(1)
	s.db = db
	s.PoemTable.DB = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.PoemTable.DB = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.Apply(context.Background(), func(msg string) {
		logger.Info(msg, "backend", "sqlite")
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(context.Background())
}

// tableExists checks if a table exists in the SQLite database.
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// SchemaVersion reports the applied and the latest embedded migration versions.
func (s *Store) SchemaVersion(ctx context.Context) (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, &storage.StorageError{Op: "schema version", Err: storage.ErrNotLoaded}
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(ctx); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

var (
	_ storage.Provider       = (*Store)(nil)
	_ storage.SchemaReporter = (*Store)(nil)
)
