package drafts

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/debemdeboas/msgboard/internal/db"
	"github.com/debemdeboas/msgboard/internal/model"
	"github.com/debemdeboas/msgboard/internal/util/compression"
)

// SQLiteRepository keeps drafts across restarts. Content is stored compressed.
type SQLiteRepository struct {
	db         db.DB
	compressor compression.Compressor
}

func NewSQLiteRepository(db db.DB, compressor compression.Compressor) *SQLiteRepository {
	return &SQLiteRepository{
		db:         db,
		compressor: compressor,
	}
}

func (r *SQLiteRepository) SaveDraft(id model.MessageID, content string) error {
	compressed, err := r.compressor.Compress([]byte(content))
	if err != nil {
		return fmt.Errorf("error compressing draft: %w", err)
	}
	// A nil blob would violate NOT NULL for empty drafts.
	if compressed == nil {
		compressed = []byte{}
	}

	res, err := r.db.Exec(
		`INSERT INTO drafts (message_id, content, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(message_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		int64(id), compressed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving draft %s: %w", id, err)
	}

	repoLogger.Debug().Interface("result", res).Str("message_id", id.String()).Msg("Draft saved")
	return nil
}

func (r *SQLiteRepository) GetDraft(id model.MessageID) (*Draft, error) {
	var compressed []byte
	draft := &Draft{ID: id}

	err := r.db.QueryRow(
		`SELECT content, updated_at FROM drafts WHERE message_id = ?`, int64(id),
	).Scan(&compressed, &draft.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading draft %s: %w", id, err)
	}

	content, err := r.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing draft %s: %w", id, err)
	}
	draft.Content = string(content)
	return draft, nil
}

func (r *SQLiteRepository) DeleteDraft(id model.MessageID) error {
	if _, err := r.db.Exec(`DELETE FROM drafts WHERE message_id = ?`, int64(id)); err != nil {
		return fmt.Errorf("error deleting draft %s: %w", id, err)
	}
	repoLogger.Debug().Str("message_id", id.String()).Msg("Draft deleted")
	return nil
}

func (r *SQLiteRepository) ListDrafts() ([]Draft, error) {
	rows, err := r.db.Query(`SELECT message_id, content, updated_at FROM drafts ORDER BY message_id`)
	if err != nil {
		return nil, fmt.Errorf("error querying drafts: %w", err)
	}
	defer rows.Close()

	out := make([]Draft, 0)
	for rows.Next() {
		var d Draft
		var id int64
		var compressed []byte
		if err := rows.Scan(&id, &compressed, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning draft: %w", err)
		}
		content, err := r.compressor.Decompress(compressed)
		if err != nil {
			return nil, fmt.Errorf("error decompressing draft %d: %w", id, err)
		}
		d.ID = model.MessageID(id)
		d.Content = string(content)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
