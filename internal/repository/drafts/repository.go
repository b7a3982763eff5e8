// Package drafts stores the edit buffer: unsaved message content keyed by
// message id.
package drafts

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/msgboard/internal/config"
	"github.com/debemdeboas/msgboard/internal/db"
	"github.com/debemdeboas/msgboard/internal/model"
	"github.com/debemdeboas/msgboard/internal/util/compression"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

var ErrDraftNotFound = errors.New("draft not found")

type Draft struct {
	ID        model.MessageID
	Content   string
	UpdatedAt time.Time
}

type Repository interface {
	// SaveDraft stores content for id, replacing any earlier draft. Empty
	// content is a valid draft.
	SaveDraft(id model.MessageID, content string) error
	// GetDraft returns ErrDraftNotFound when id has no draft.
	GetDraft(id model.MessageID) (*Draft, error)
	DeleteDraft(id model.MessageID) error
	// ListDrafts returns every draft ordered by id.
	ListDrafts() ([]Draft, error)
	Close() error
}

// Open builds the repository selected by cfg.
func Open(cfg config.DraftsConfig) (Repository, error) {
	switch cfg.Store {
	case config.DraftStoreMemory, "":
		return NewMemoryRepository(), nil
	case config.DraftStoreSQLite:
		compressor, err := compression.New(cfg.Compression)
		if err != nil {
			return nil, err
		}
		sqlite := db.NewSQLite(cfg.Path)
		if err := sqlite.InitDB(); err != nil {
			return nil, fmt.Errorf(config.ErrInitializeDatabaseFmt, err)
		}
		return NewSQLiteRepository(sqlite, compressor), nil
	default:
		return nil, fmt.Errorf("unknown draft store %q", cfg.Store)
	}
}
