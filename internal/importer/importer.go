// Package importer stores scraped poems under a mood label.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/models"
	"github.com/julianstephens/moodverse/internal/storage"
)

var ErrNoMoodType = errors.New("mood type cannot be empty")

type PoemAdder interface {
	AddPoem(ctx context.Context, poem models.PoemRecord) (int64, error)
}

// Report counts the outcome of an import. Skipped holds the names of rejected poems.
type Report struct {
	Inserted int
	Failed   int
	Skipped  []string
}

// Insert adds each complete poem under moodType. Incomplete poems and
// per-poem insert errors are counted as failures; a storage error stops the run.
func Insert(ctx context.Context, store PoemAdder, poems []models.ScrapedPoem, moodType string) (Report, error) {
	var report Report

	moodType = strings.TrimSpace(moodType)
	if moodType == "" {
		return report, ErrNoMoodType
	}

	for _, p := range poems {
		record := models.PoemRecord{
			Name:    strings.TrimSpace(p.Name),
			Author:  strings.TrimSpace(p.Writer),
			Text:    models.SplitLines(strings.TrimSpace(p.Text)),
			Valence: models.Valence(moodType),
		}

		id, err := store.AddPoem(ctx, record)
		switch {
		case err == nil:
			report.Inserted++
			logger.Debug("Inserted poem", "id", id, "name", record.Name, "mood_type", moodType)
		case errors.Is(err, storage.ErrIncompletePoem):
			report.Failed++
			report.Skipped = append(report.Skipped, displayName(record.Name))
			logger.Info("Skipping incomplete poem", "name", displayName(record.Name))
		case storage.IsStorageError(err):
			report.Failed += len(poems) - report.Inserted - report.Failed
			return report, fmt.Errorf("inserting poem %q: %w", record.Name, err)
		default:
			report.Failed++
			logger.Warn("Error inserting poem", "name", record.Name, "error", err)
		}
	}
	return report, nil
}

func displayName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
