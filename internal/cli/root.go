package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/julianstephens/moodverse/internal/keyring"
	"github.com/julianstephens/moodverse/internal/poetry"
	"github.com/julianstephens/moodverse/internal/storage"
	"github.com/julianstephens/moodverse/internal/storage/postgres"
	"github.com/julianstephens/moodverse/internal/storage/sqlite"
)

// Context is shared by every moodverse subcommand. The store is opened on first use.
type Context struct {
	Globals
	Rand *rand.Rand
	Out  io.Writer
	Now  func() time.Time

	store storage.Provider
}

func NewContext(g Globals, out io.Writer) *Context {
	return &Context{
		Globals: g,
		Rand:    NewRand(g.Seed),
		Out:     out,
		Now:     time.Now,
	}
}

// Store returns the configured backend without loading it.
func (c *Context) Store() (storage.Provider, error) {
	if c.store != nil {
		return c.store, nil
	}
	store, err := OpenStore(c.DB, c.Rand)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

// LoadStore returns the backend after loading an existing database.
func (c *Context) LoadStore() (storage.Provider, error) {
	store, err := c.Store()
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading poem database (run 'moodverse init' first?): %w", err)
	}
	return store, nil
}

func (c *Context) Poetry() *poetry.Client {
	return poetry.New(c.PoetryURL)
}

func (c *Context) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Globals are the flags every subcommand accepts.
type Globals struct {
	DB        string  `help:"Poem database path, PostgreSQL connection string, or 'keyring' to use the stored connection." env:"MOODVERSE_DB" default:"~/.config/moodverse/poems.db"`
	Debug     bool    `help:"Enable debug logging (also printed to stderr)." env:"MOODVERSE_DEBUG"`
	PoetryURL string  `help:"Base URL of the remote poem service." env:"MOODVERSE_POETRY_URL" default:"https://poetrydb.org" name:"poetry-url"`
	Seed      *uint64 `help:"Seed for poem selection, for reproducible picks."`
}

// NewRand returns a seeded source when seed is set, otherwise a random one.
func NewRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// OpenStore picks the backend for db without loading it.
// Connection strings typed on the command line must not carry a password;
// the keyring copy may.
func OpenStore(db string, rng *rand.Rand) (storage.Provider, error) {
	resolved, fromKeyring, err := keyring.Resolve(db)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, errors.New("no connection string found in keyring. Use 'moodverse connection set' to store one")
		}
		return nil, err
	}

	if !storage.IsPostgresDSN(resolved) && !fromKeyring {
		return sqlite.NewStore(storage.ExpandHome(resolved), rng), nil
	}

	if err := postgres.ValidateConnString(resolved); err != nil {
		if !(fromKeyring && errors.Is(err, postgres.ErrEmbeddedCredentials)) {
			return nil, fmt.Errorf("%w. Store the connection with 'moodverse connection set' or use PGPASSWORD/.pgpass", err)
		}
	}
	return postgres.New(resolved, rng), nil
}
