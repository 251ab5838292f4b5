package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/moodverse/internal/logger"
)

const (
	// DefaultKeep is how many snapshots survive rotation.
	DefaultKeep = 10
	DirName     = "backups"
	filePrefix  = "poems-"
	fileSuffix  = ".db"
	stampFormat = "20060102-150405"
)

// Snapshot is one saved copy of the poem database.
type Snapshot struct {
	Path    string
	TakenAt time.Time
	Size    int64
}

// Manager snapshots a SQLite poem database into a sibling backups directory.
type Manager struct {
	dbPath string
	dir    string
	Keep   int
	Now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		Keep:   DefaultKeep,
		Now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a new snapshot and rotates old ones.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("rotating poem database snapshots", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("poem database not found: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.freeName()
	if err != nil {
		return "", err
	}

	db, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("failed to open poem database: %w", err)
	}
	defer db.Close()

	if err := ping(db); err != nil {
		return "", fmt.Errorf("poem database is not readable: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	logger.Debug("poem database snapshot written", "path", path)
	return path, nil
}

// freeName picks the snapshot path for the current second, adding a counter on collision.
func (m *Manager) freeName() (string, error) {
	stamp := m.Now().Format(stampFormat)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 99 {
			return "", fmt.Errorf("no free snapshot name for %s", stamp)
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, n, fileSuffix))
	}
}

// List returns snapshots newest first. A missing directory yields none.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	snaps := []Snapshot{}
	for _, e := range entries {
		taken, ok := parseName(e.Name())
		if e.IsDir() || !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{Path: filepath.Join(m.dir, e.Name()), TakenAt: taken, Size: info.Size()})
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i].TakenAt.Equal(snaps[j].TakenAt) {
			return snaps[i].Path > snaps[j].Path
		}
		return snaps[i].TakenAt.After(snaps[j].TakenAt)
	})
	return snaps, nil
}

func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(stamp) > len(stampFormat) {
		stamp = stamp[:len(stampFormat)]
	}
	t, err := time.ParseInLocation(stampFormat, stamp, time.Local)
	return t, err == nil
}

func (m *Manager) rotate() error {
	snaps, err := m.List()
	if err != nil || len(snaps) <= m.Keep {
		return err
	}
	for _, s := range snaps[m.Keep:] {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", s.Path, err)
		}
	}
	return nil
}

// Restore replaces the poem database with a snapshot. The current database, if any,
// is snapshotted first and that path is returned.
func (m *Manager) Restore(snapshot string) (string, error) {
	if err := verify(snapshot); err != nil {
		return "", fmt.Errorf("snapshot %s is not a usable database: %w", snapshot, err)
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		if previous, err = m.create(); err != nil {
			return "", fmt.Errorf("failed to save current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(snapshot, tmp); err != nil {
		return previous, fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("removing restore temp file", "path", tmp, "error", rmErr)
		}
		return previous, fmt.Errorf("failed to restore poem database: %w", err)
	}
	return previous, nil
}

func verify(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return ping(db)
}

func ping(db *sql.DB) error {
	var n int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
