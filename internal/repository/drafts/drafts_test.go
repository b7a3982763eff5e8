package drafts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/msgboard/internal/config"
	"github.com/debemdeboas/msgboard/internal/db"
	"github.com/debemdeboas/msgboard/internal/model"
	"github.com/debemdeboas/msgboard/internal/util/compression"
)

func newSQLiteRepo(t *testing.T, c compression.Compressor) *SQLiteRepository {
	t.Helper()
	db.SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	sqlite := db.NewSQLite(":memory:")
	if err := sqlite.InitDB(); err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	repo := NewSQLiteRepository(sqlite, c)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// repositories returns one instance of every implementation.
func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"memory":      NewMemoryRepository(),
		"sqlite-zstd": newSQLiteRepo(t, compression.ZstdCompressor{}),
		"sqlite-gzip": newSQLiteRepo(t, compression.GzipCompressor{}),
		"sqlite-none": newSQLiteRepo(t, compression.NoopCompressor{}),
	}
}

func TestRepositoryContract(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("Missing draft", func(t *testing.T) {
				_, err := repo.GetDraft(1)
				if !errors.Is(err, ErrDraftNotFound) {
					t.Errorf("Expected ErrDraftNotFound, got %v", err)
				}
			})

			t.Run("Save and get", func(t *testing.T) {
				if err := repo.SaveDraft(1, "first"); err != nil {
					t.Fatalf("SaveDraft failed: %v", err)
				}
				d, err := repo.GetDraft(1)
				if err != nil {
					t.Fatalf("GetDraft failed: %v", err)
				}
				if d.ID != 1 || d.Content != "first" {
					t.Errorf("Unexpected draft: %+v", d)
				}
				if d.UpdatedAt.IsZero() {
					t.Error("Expected UpdatedAt to be set")
				}
			})

			t.Run("Save overwrites", func(t *testing.T) {
				if err := repo.SaveDraft(1, "second"); err != nil {
					t.Fatalf("SaveDraft failed: %v", err)
				}
				d, err := repo.GetDraft(1)
				if err != nil {
					t.Fatalf("GetDraft failed: %v", err)
				}
				if d.Content != "second" {
					t.Errorf("Expected overwritten content, got %q", d.Content)
				}
			})

			t.Run("Empty content is kept", func(t *testing.T) {
				if err := repo.SaveDraft(2, ""); err != nil {
					t.Fatalf("SaveDraft failed: %v", err)
				}
				d, err := repo.GetDraft(2)
				if err != nil {
					t.Fatalf("Expected empty draft to exist, got %v", err)
				}
				if d.Content != "" {
					t.Errorf("Expected empty content, got %q", d.Content)
				}
			})

			t.Run("List is ordered by id", func(t *testing.T) {
				if err := repo.SaveDraft(-5, "negative ids sort first"); err != nil {
					t.Fatalf("SaveDraft failed: %v", err)
				}
				list, err := repo.ListDrafts()
				if err != nil {
					t.Fatalf("ListDrafts failed: %v", err)
				}
				want := []model.MessageID{-5, 1, 2}
				if len(list) != len(want) {
					t.Fatalf("Expected %d drafts, got %d", len(want), len(list))
				}
				for i, id := range want {
					if list[i].ID != id {
						t.Errorf("Position %d: expected id %d, got %d", i, id, list[i].ID)
					}
				}
				if list[1].Content != "second" {
					t.Errorf("Expected listed content to be decoded, got %q", list[1].Content)
				}
			})

			t.Run("Delete", func(t *testing.T) {
				if err := repo.DeleteDraft(1); err != nil {
					t.Fatalf("DeleteDraft failed: %v", err)
				}
				if _, err := repo.GetDraft(1); !errors.Is(err, ErrDraftNotFound) {
					t.Errorf("Expected draft to be gone, got %v", err)
				}
				// Deleting again is not an error
				if err := repo.DeleteDraft(1); err != nil {
					t.Errorf("Expected idempotent delete, got %v", err)
				}
			})
		})
	}
}

func TestSQLiteRepositoryStoresCompressed(t *testing.T) {
	repo := newSQLiteRepo(t, compression.GzipCompressor{})
	if err := repo.SaveDraft(7, "plain text"); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	var raw []byte
	if err := repo.db.QueryRow(`SELECT content FROM drafts WHERE message_id = 7`).Scan(&raw); err != nil {
		t.Fatalf("Failed to read raw row: %v", err)
	}
	if string(raw) == "plain text" {
		t.Error("Expected stored content to be compressed")
	}
}

func TestSQLiteRepositorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	cfg := config.DraftsConfig{Store: config.DraftStoreSQLite, Path: path, Compression: config.CompressionZstd}

	first, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := first.SaveDraft(3, "kept across restarts"); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(cfg)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	d, err := second.GetDraft(3)
	if err != nil {
		t.Fatalf("Expected draft after reopen, got %v", err)
	}
	if d.Content != "kept across restarts" {
		t.Errorf("Unexpected content %q", d.Content)
	}
}

func TestOpen(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.DraftsConfig
		expectError bool
	}{
		{name: "Memory", cfg: config.DraftsConfig{Store: config.DraftStoreMemory}},
		{name: "Empty store means memory", cfg: config.DraftsConfig{}},
		{name: "Unknown store", cfg: config.DraftsConfig{Store: "redis"}, expectError: true},
		{
			name:        "Unknown compression",
			cfg:         config.DraftsConfig{Store: config.DraftStoreSQLite, Path: ":memory:", Compression: "lz4"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, err := Open(tc.cfg)
			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer repo.Close()
			if _, ok := repo.(*MemoryRepository); !ok {
				t.Errorf("Expected *MemoryRepository, got %T", repo)
			}
		})
	}
}

func TestMemoryRepositoryCloseDiscardsDrafts(t *testing.T) {
	repo := NewMemoryRepository()
	for _, id := range []model.MessageID{1, 2} {
		if err := repo.SaveDraft(id, "unsaved"); err != nil {
			t.Fatalf("SaveDraft failed: %v", err)
		}
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := repo.GetDraft(1); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Expected ErrDraftNotFound after Close, got %v", err)
	}
	list, err := repo.ListDrafts()
	if err != nil {
		t.Fatalf("ListDrafts failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected no drafts after Close, got %v", list)
	}
}
