package storage

import (
	"context"

	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/models"
)

// PoemStore is the read side the mood session depends on.
type PoemStore interface {
	// FindRandomByMood returns a uniformly random poem whose valence matches score.
	// It returns ErrNotFound when no poem matches and a *StorageError when the
	// backend cannot be read.
	FindRandomByMood(ctx context.Context, score int) (models.PoemRecord, error)
}

// Provider is a complete poem storage backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	PoemStore
	FindRandomByValence(ctx context.Context, valence models.Valence) (models.PoemRecord, error)

	// AddPoem inserts a poem under the next free id (max(id)+1) and returns that id
	AddPoem(ctx context.Context, poem models.PoemRecord) (int64, error)
	CountByValence(ctx context.Context) (map[models.Valence]int, error)

	// Utils
	GetConfigPath() string
}

// ValenceForScore maps a mood score onto the poem category served for it.
func ValenceForScore(score int) models.Valence {
	if score >= constants.HappyThreshold {
		return models.ValenceHappy
	}
	return models.ValenceSad
}

// SchemaReporter is implemented by backends whose schema is managed by migrations.
type SchemaReporter interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}
