package session

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/storage"
)

type fakeStore struct {
	poems []models.PoemRecord
	err   error
	calls []int
}

func (f *fakeStore) FindRandomByMood(_ context.Context, score int) (models.PoemRecord, error) {
	f.calls = append(f.calls, score)
	if f.err != nil {
		return models.PoemRecord{}, f.err
	}
	want := storage.ValenceForScore(score)
	for _, p := range f.poems {
		if p.Valence == want {
			return p, nil
		}
	}
	return models.PoemRecord{}, storage.ErrNotFound
}

type fakeFetcher struct {
	poem models.ExternalPoem
	ok   bool
}

func (f fakeFetcher) FetchSuitablePoem(context.Context) (models.ExternalPoem, bool) {
	return f.poem, f.ok
}

var sessionDay = time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)

func newSession(store storage.PoemStore) *Session {
	return New(store, nil, sessionDay)
}

func TestRecordMoodAcceptsEveryValidScore(t *testing.T) {
	s := newSession(&fakeStore{})
	for score := 1; score <= 10; score++ {
		out := s.RecordMood(context.Background(), "", fmt.Sprint(score))
		if !out.Accepted || out.Err != nil {
			t.Fatalf("score %d rejected: %+v", score, out.Err)
		}
		if out.Record.Score != score {
			t.Errorf("Record.Score = %d, want %d", out.Record.Score, score)
		}
		if got := len(s.ListRecords()); got != score {
			t.Errorf("history length = %d, want %d", got, score)
		}
	}
}

func TestRecordMoodRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		input string
		want  Reason
	}{
		{"", NotANumber},
		{"abc", NotANumber},
		{"5.5", NotANumber},
		{"7a", NotANumber},
		{"0", OutOfRange},
		{"11", OutOfRange},
		{"-3", OutOfRange},
		{"100", OutOfRange},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			store := &fakeStore{}
			s := newSession(store)
			out := s.RecordMood(context.Background(), "2024-03-01", tt.input)
			if out.Accepted {
				t.Fatal("invalid input accepted")
			}
			if out.Err == nil || out.Err.Reason != tt.want {
				t.Fatalf("Err = %v, want reason %v", out.Err, tt.want)
			}
			if len(s.ListRecords()) != 0 {
				t.Error("history grew on rejected input")
			}
			if len(store.calls) != 0 {
				t.Error("store queried for rejected input")
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	if got := (&ValidationError{Reason: NotANumber}).Error(); got != "Invalid input! Please enter a number for the mood score." {
		t.Errorf("NotANumber message = %q", got)
	}
	if got := (&ValidationError{Reason: OutOfRange}).Error(); got != "Invalid mood score! Must be between 1 and 10." {
		t.Errorf("OutOfRange message = %q", got)
	}
}

func TestRecordMoodTrimsScore(t *testing.T) {
	s := newSession(&fakeStore{})
	out := s.RecordMood(context.Background(), "", "  8\n")
	if !out.Accepted || out.Record.Score != 8 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestRecordMoodDefaultsToSessionDate(t *testing.T) {
	s := newSession(&fakeStore{})
	out := s.RecordMood(context.Background(), "  ", "4")
	if out.Record.Date != "2024-03-05" {
		t.Errorf("Date = %q, want 2024-03-05", out.Record.Date)
	}

	out = s.RecordMood(context.Background(), "2023-12-31", "4")
	if out.Record.Date != "2023-12-31" {
		t.Errorf("Date = %q, want explicit date", out.Record.Date)
	}
	if s.Today() != "2024-03-05" {
		t.Errorf("Today() = %q", s.Today())
	}
}

func TestRecordMoodServesMatchingPoem(t *testing.T) {
	store := &fakeStore{poems: []models.PoemRecord{
		{Name: "Gloom", Author: "A", Text: []string{"dark"}, Valence: models.ValenceSad},
		{Name: "Joy", Author: "B", Text: []string{"light"}, Valence: models.ValenceHappy},
	}}
	s := newSession(store)

	out := s.RecordMood(context.Background(), "", "6")
	if out.Poem == nil || out.Poem.Name != "Joy" {
		t.Errorf("score 6 poem = %+v, want Joy", out.Poem)
	}
	out = s.RecordMood(context.Background(), "", "5")
	if out.Poem == nil || out.Poem.Name != "Gloom" {
		t.Errorf("score 5 poem = %+v, want Gloom", out.Poem)
	}
}

func TestRecordMoodSoftensStoreFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", storage.ErrNotFound},
		{"storage error", &storage.StorageError{Op: "query", Err: errors.New("disk I/O error")}},
		{"unexpected error", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(&fakeStore{err: tt.err})
			out := s.RecordMood(context.Background(), "", "3")
			if !out.Accepted {
				t.Fatal("entry rejected because of store failure")
			}
			if out.Poem != nil {
				t.Errorf("Poem = %+v, want nil", out.Poem)
			}
			if len(s.ListRecords()) != 1 {
				t.Error("entry not recorded")
			}
		})
	}
}

func TestRecordMoodWithoutStore(t *testing.T) {
	s := New(nil, nil, sessionDay)
	out := s.RecordMood(context.Background(), "", "9")
	if !out.Accepted || out.Poem != nil {
		t.Errorf("outcome = %+v", out)
	}
}

func TestRecordMoodTrend(t *testing.T) {
	s := newSession(&fakeStore{})
	ctx := context.Background()

	var last RecordOutcome
	for _, score := range []string{"2", "3", "4"} {
		last = s.RecordMood(ctx, "", score)
	}
	if last.Trend != models.LowStreak {
		t.Errorf("Trend = %v, want LowStreak", last.Trend)
	}

	// rejected input leaves the trend tail alone
	s.RecordMood(ctx, "", "nope")
	last = s.RecordMood(ctx, "", "5")
	if last.Trend != models.NoTrend {
		t.Errorf("Trend = %v, want NoTrend", last.Trend)
	}
}

func TestListRecordsIsACopy(t *testing.T) {
	s := newSession(&fakeStore{})
	s.RecordMood(context.Background(), "2024-03-01", "7")

	records := s.ListRecords()
	records[0].Score = 1

	got := s.ListRecords()
	if len(got) != 1 || got[0].Score != 7 {
		t.Errorf("history mutated through snapshot: %v", got)
	}
}

func TestHistoryForChart(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		s := newSession(&fakeStore{})
		got := s.HistoryForChart()
		if got == nil || len(got) != 0 {
			t.Errorf("HistoryForChart() = %#v, want empty", got)
		}
	})

	t.Run("sorted by date", func(t *testing.T) {
		s := newSession(&fakeStore{})
		s.RecordMood(ctx, "2024-03-02", "4")
		s.RecordMood(ctx, "2024-03-01", "7")

		want := []models.ChartPoint{{Date: "2024-03-01", Score: 7}, {Date: "2024-03-02", Score: 4}}
		if got := s.HistoryForChart(); !reflect.DeepEqual(got, want) {
			t.Errorf("HistoryForChart() = %v, want %v", got, want)
		}

		records := s.ListRecords()
		if records[0].Date != "2024-03-02" {
			t.Error("chart ordering changed insertion order")
		}
	})

	t.Run("ties keep entry order", func(t *testing.T) {
		s := newSession(&fakeStore{})
		s.RecordMood(ctx, "2024-03-02", "9")
		s.RecordMood(ctx, "2024-03-01", "1")
		s.RecordMood(ctx, "2024-03-02", "3")
		s.RecordMood(ctx, "2024-03-01", "2")

		want := []models.ChartPoint{
			{Date: "2024-03-01", Score: 1},
			{Date: "2024-03-01", Score: 2},
			{Date: "2024-03-02", Score: 9},
			{Date: "2024-03-02", Score: 3},
		}
		if got := s.HistoryForChart(); !reflect.DeepEqual(got, want) {
			t.Errorf("HistoryForChart() = %v, want %v", got, want)
		}
	})
}

func TestInspiration(t *testing.T) {
	want := models.ExternalPoem{Title: "Ozymandias", Author: "Shelley", Lines: []string{"I met a traveller"}}

	s := New(nil, fakeFetcher{poem: want, ok: true}, sessionDay)
	got, ok := s.Inspiration(context.Background())
	if !ok || got.Title != want.Title {
		t.Errorf("Inspiration() = %+v, %v", got, ok)
	}

	s = New(nil, fakeFetcher{}, sessionDay)
	if _, ok := s.Inspiration(context.Background()); ok {
		t.Error("Inspiration() ok with failing fetcher")
	}

	s = New(nil, nil, sessionDay)
	if _, ok := s.Inspiration(context.Background()); ok {
		t.Error("Inspiration() ok without fetcher")
	}
}
