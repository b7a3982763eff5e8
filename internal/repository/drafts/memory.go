package drafts

import (
	"cmp"
	"slices"
	"time"

	"github.com/debemdeboas/msgboard/internal/cache"
	"github.com/debemdeboas/msgboard/internal/model"
)

type MemoryRepository struct {
	drafts *cache.Cache[model.MessageID, Draft]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		drafts: cache.NewCache[model.MessageID, Draft](),
	}
}

func (r *MemoryRepository) SaveDraft(id model.MessageID, content string) error {
	r.drafts.Set(id, Draft{
		ID:        id,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *MemoryRepository) GetDraft(id model.MessageID) (*Draft, error) {
	if draft, ok := r.drafts.Get(id); ok {
		return &draft, nil
	}
	return nil, ErrDraftNotFound
}

func (r *MemoryRepository) DeleteDraft(id model.MessageID) error {
	r.drafts.Delete(id)
	return nil
}

func (r *MemoryRepository) ListDrafts() ([]Draft, error) {
	snap := r.drafts.Snapshot()
	out := make([]Draft, 0, len(snap))
	for _, d := range snap {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Draft) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Close discards every draft; the memory store does not outlive the process.
func (r *MemoryRepository) Close() error {
	if n := r.drafts.Len(); n > 0 {
		repoLogger.Warn().Int("count", n).Msg("Discarding unsaved drafts")
	}
	r.drafts.Clear()
	return nil
}
