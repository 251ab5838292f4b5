package importer

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/storage"
	"github.com/julianstephens/moodverse/internal/storage/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "poems.db"), rand.New(rand.NewPCG(7, 7)))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsert(t *testing.T) {
	store := newStore(t)

	poems := []models.ScrapedPoem{
		{Name: "Spring Song", Writer: "William Blake", Text: "Sound the flute!\nNow it's mute."},
		{Name: "", Writer: "Nobody", Text: "orphan"},
		{Name: "Blank", Writer: "  ", Text: "text"},
		{Name: "Renewal", Writer: "Jane Doe", Text: "  Begin again\n"},
	}

	report, err := Insert(context.Background(), store, poems, "happy")
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if report.Inserted != 2 || report.Failed != 2 {
		t.Errorf("report = %+v, want 2 inserted, 2 failed", report)
	}
	if want := []string{"Unknown", "Blank"}; !reflect.DeepEqual(report.Skipped, want) {
		t.Errorf("Skipped = %v, want %v", report.Skipped, want)
	}

	counts, err := store.CountByValence(context.Background())
	if err != nil {
		t.Fatalf("CountByValence() error: %v", err)
	}
	if counts[models.ValenceHappy] != 2 {
		t.Errorf("happy count = %d, want 2", counts[models.ValenceHappy])
	}
}

func TestInsertRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	in := models.ScrapedPoem{Name: "Hope", Writer: "Emily Dickinson", Text: "Hope is the thing with feathers\nThat perches in the soul"}
	if _, err := Insert(ctx, store, []models.ScrapedPoem{in}, "sad"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	got, err := store.FindRandomByMood(ctx, 2)
	if err != nil {
		t.Fatalf("FindRandomByMood() error: %v", err)
	}
	if got.Name != in.Name || got.Author != in.Writer || got.Body() != in.Text {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}

	if _, err := store.FindRandomByMood(ctx, 9); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("FindRandomByMood(9) error = %v, want ErrNotFound", err)
	}
}

func TestInsertOtherMoodTypes(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	poems := []models.ScrapedPoem{{Name: "Dawn", Writer: "A", Text: "light"}}
	if _, err := Insert(ctx, store, poems, "new-life"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	counts, err := store.CountByValence(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts["new-life"] != 1 {
		t.Errorf("counts = %v, want new-life: 1", counts)
	}
	if _, err := store.FindRandomByMood(ctx, 8); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("new-life poem served for a mood score: %v", err)
	}
}

func TestInsertRequiresMoodType(t *testing.T) {
	store := newStore(t)
	if _, err := Insert(context.Background(), store, nil, " "); !errors.Is(err, ErrNoMoodType) {
		t.Errorf("Insert() error = %v, want ErrNoMoodType", err)
	}
}

type brokenStore struct{ calls int }

func (b *brokenStore) AddPoem(context.Context, models.PoemRecord) (int64, error) {
	b.calls++
	return 0, &storage.StorageError{Op: "add poem", Err: errors.New("database is locked")}
}

func TestInsertStopsOnStorageError(t *testing.T) {
	store := &brokenStore{}
	poems := []models.ScrapedPoem{
		{Name: "A", Writer: "W", Text: "t"},
		{Name: "B", Writer: "W", Text: "t"},
		{Name: "C", Writer: "W", Text: "t"},
	}

	report, err := Insert(context.Background(), store, poems, "happy")
	if !storage.IsStorageError(err) {
		t.Fatalf("Insert() error = %v, want StorageError", err)
	}
	if store.calls != 1 {
		t.Errorf("AddPoem called %d times, want 1", store.calls)
	}
	if report.Inserted != 0 || report.Failed != 3 {
		t.Errorf("report = %+v, want 3 failed", report)
	}
}
