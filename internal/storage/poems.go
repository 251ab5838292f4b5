package storage

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/moodverse/internal/models"
)

// PoemTable implements the poem queries shared by the SQL backends.
// Bind renders the n-th (1-based) bind parameter for the backend's dialect.
type PoemTable struct {
	DB   *sql.DB
	Bind func(n int) string
	Rand *rand.Rand
}

// QuestionBind is the SQLite bind style.
func QuestionBind(int) string { return "?" }

// DollarBind is the PostgreSQL bind style.
func DollarBind(n int) string { return "$" + strconv.Itoa(n) }

func (t *PoemTable) ready(op string) error {
	if t == nil || t.DB == nil {
		return storageErr(op, ErrNotLoaded)
	}
	return nil
}

func (t *PoemTable) intN(n int) int {
	if t.Rand != nil {
		return t.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func (t *PoemTable) FindRandomByMood(ctx context.Context, score int) (models.PoemRecord, error) {
	return t.FindRandomByValence(ctx, ValenceForScore(score))
}

// FindRandomByValence counts the matching rows and picks one by offset, so the choice
// follows the injected random source rather than the database's RANDOM().
func (t *PoemTable) FindRandomByValence(ctx context.Context, valence models.Valence) (models.PoemRecord, error) {
	const op = "find poem"
	if err := t.ready(op); err != nil {
		return models.PoemRecord{}, err
	}

	var count int
	err := t.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM poems WHERE mood_type = "+t.Bind(1), string(valence),
	).Scan(&count)
	if err != nil {
		return models.PoemRecord{}, storageErr(op, err)
	}
	if count == 0 {
		return models.PoemRecord{}, ErrNotFound
	}

	row := t.DB.QueryRowContext(ctx,
		`SELECT id, poem_name, writer_name, poem_text, mood_type, created_at
		 FROM poems WHERE mood_type = `+t.Bind(1)+`
		 ORDER BY id LIMIT 1 OFFSET `+t.Bind(2),
		string(valence), t.intN(count),
	)

	var (
		poem      models.PoemRecord
		body      string
		mood      string
		createdAt string
	)
	if err := row.Scan(&poem.ID, &poem.Name, &poem.Author, &body, &mood, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PoemRecord{}, ErrNotFound
		}
		return models.PoemRecord{}, storageErr(op, err)
	}
	poem.Text = models.SplitLines(body)
	poem.Valence = models.Valence(mood)
	poem.CreatedAt = parseTimestamp(createdAt)
	return poem, nil
}

func (t *PoemTable) AddPoem(ctx context.Context, poem models.PoemRecord) (int64, error) {
	const op = "add poem"
	if err := t.ready(op); err != nil {
		return 0, err
	}

	name := strings.TrimSpace(poem.Name)
	author := strings.TrimSpace(poem.Author)
	body := strings.TrimSpace(poem.Body())
	if name == "" || author == "" || body == "" {
		return 0, ErrIncompletePoem
	}

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageErr(op, err)
	}
	defer tx.Rollback()

	var nextID int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM poems").Scan(&nextID); err != nil {
		return 0, storageErr(op, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO poems (id, poem_name, writer_name, poem_text, mood_type) VALUES ("+
			t.Bind(1)+", "+t.Bind(2)+", "+t.Bind(3)+", "+t.Bind(4)+", "+t.Bind(5)+")",
		nextID, name, author, body, string(poem.Valence),
	)
	if err != nil {
		return 0, storageErr(op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr(op, err)
	}
	return nextID, nil
}

func (t *PoemTable) CountByValence(ctx context.Context) (map[models.Valence]int, error) {
	const op = "count poems"
	if err := t.ready(op); err != nil {
		return nil, err
	}

	rows, err := t.DB.QueryContext(ctx, "SELECT mood_type, COUNT(*) FROM poems GROUP BY mood_type ORDER BY mood_type")
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	counts := make(map[models.Valence]int)
	for rows.Next() {
		var (
			mood  string
			count int
		)
		if err := rows.Scan(&mood, &count); err != nil {
			return nil, storageErr(op, err)
		}
		counts[models.Valence(mood)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return counts, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// parseTimestamp accepts the textual forms the drivers hand back for created_at.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
