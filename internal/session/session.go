// Package session holds the in-memory mood journal and the rules that pick
// a poem and a trend for each accepted entry.
package session

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodverse/internal/constants"
	apperrors "github.com/julianstephens/moodverse/internal/errors"
	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/storage"
	"github.com/julianstephens/moodverse/internal/trend"
)

// Fetcher retrieves a poem from outside the local store.
type Fetcher interface {
	FetchSuitablePoem(ctx context.Context) (models.ExternalPoem, bool)
}

// RecordOutcome is the result of one RecordMood call.
// Poem is nil when no matching poem could be served.
type RecordOutcome struct {
	Accepted bool
	Err      *ValidationError
	Record   models.MoodRecord
	Poem     *models.PoemRecord
	Trend    models.Trend
}

type Session struct {
	id      uuid.UUID
	today   string
	store   storage.PoemStore
	fetcher Fetcher
	history []models.MoodRecord
}

// New starts a session. today is captured once and used for every entry without a date.
func New(store storage.PoemStore, fetcher Fetcher, today time.Time) *Session {
	s := &Session{
		id:      uuid.New(),
		today:   today.Format(constants.DateFormat),
		store:   store,
		fetcher: fetcher,
	}
	logger.Debug("Session started", "session", s.id.String(), "today", s.today)
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Today is the date snapshot taken when the session started.
func (s *Session) Today() string {
	return s.today
}

func ParseScore(raw string) (int, *ValidationError) {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Reason: NotANumber, Input: raw}
	}
	if score < constants.MinScore || score > constants.MaxScore {
		return 0, &ValidationError{Reason: OutOfRange, Input: raw}
	}
	return score, nil
}

// RecordMood validates and appends one entry, then looks up a matching poem
// and recomputes the trend. An empty date means the session date.
func (s *Session) RecordMood(ctx context.Context, date, rawScore string) RecordOutcome {
	score, verr := ParseScore(rawScore)
	if verr != nil {
		logger.Debug("Rejected mood score", "session", s.id.String(), "input", rawScore, "reason", verr.Reason)
		return RecordOutcome{Err: verr}
	}

	date = strings.TrimSpace(date)
	if date == "" {
		date = s.today
	}

	record := models.MoodRecord{Date: date, Score: score}
	s.history = append(s.history, record)

	return RecordOutcome{
		Accepted: true,
		Record:   record,
		Poem:     s.poemFor(ctx, score),
		Trend:    trend.Classify(s.history),
	}
}

func (s *Session) poemFor(ctx context.Context, score int) *models.PoemRecord {
	if s.store == nil {
		return nil
	}

	poem, err := s.store.FindRandomByMood(ctx, score)
	switch {
	case err == nil:
		return &poem
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("No poem for mood", "session", s.id.String(), "score", score)
		return nil
	default:
		apperrors.Soften(err, "Poem lookup failed", "session", s.id.String(), "score", score, "storage_error", storage.IsStorageError(err))
		return nil
	}
}

// ListRecords returns a copy of the history in entry order.
func (s *Session) ListRecords() []models.MoodRecord {
	out := make([]models.MoodRecord, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryForChart returns the history sorted by date. Equal dates keep entry order.
func (s *Session) HistoryForChart() []models.ChartPoint {
	points := make([]models.ChartPoint, len(s.history))
	for i, r := range s.history {
		points[i] = models.ChartPoint{Date: r.Date, Score: r.Score}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// Inspiration fetches an external poem. ok is false when none could be fetched.
func (s *Session) Inspiration(ctx context.Context) (models.ExternalPoem, bool) {
	if s.fetcher == nil {
		return models.ExternalPoem{}, false
	}
	poem, ok := s.fetcher.FetchSuitablePoem(ctx)
	if !ok {
		logger.Info("Inspiration unavailable", "session", s.id.String())
	}
	return poem, ok
}
