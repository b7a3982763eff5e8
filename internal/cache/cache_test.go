package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewCache(t *testing.T) {
	t.Run("String cache", func(t *testing.T) {
		cache := NewCache[string, string]()
		if cache == nil {
			t.Fatal("Expected non-nil cache")
		}
		if cache.items == nil {
			t.Fatal("Expected items map to be initialized")
		}
	})

	t.Run("Integer keys", func(t *testing.T) {
		cache := NewCache[int64, string]()
		if cache.Len() != 0 {
			t.Fatalf("Expected empty cache, got %d items", cache.Len())
		}
	})
}

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[int64, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set(1, "hello")

		got, exists := cache.Get(1)
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "hello" {
			t.Errorf("Expected %q, got %q", "hello", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, exists := cache.Get(404); exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Overwrite existing key", func(t *testing.T) {
		cache.Set(2, "first")
		cache.Set(2, "second")

		got, _ := cache.Get(2)
		if got != "second" {
			t.Errorf("Expected %q, got %q", "second", got)
		}
	})

	t.Run("Empty string is a value", func(t *testing.T) {
		cache.Set(3, "")

		got, exists := cache.Get(3)
		if !exists || got != "" {
			t.Errorf("Expected empty value to be stored, got %q (exists=%v)", got, exists)
		}
	})
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache[int64, string]()

	t.Run("Delete existing key", func(t *testing.T) {
		cache.Set(7, "bye")

		if !cache.Delete(7) {
			t.Error("Expected Delete to report the key as present")
		}
		if _, exists := cache.Get(7); exists {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Delete non-existent key", func(t *testing.T) {
		if cache.Delete(8) {
			t.Error("Expected Delete to report the key as absent")
		}
	})
}

func TestCache_SnapshotLenAndClear(t *testing.T) {
	cache := NewCache[int64, string]()
	cache.Set(1, "a")
	cache.Set(2, "b")

	snap := cache.Snapshot()
	if len(snap) != 2 || snap[1] != "a" || snap[2] != "b" {
		t.Errorf("Unexpected snapshot: %v", snap)
	}

	// Mutating the snapshot must not leak into the cache.
	snap[3] = "c"
	if cache.Len() != 2 {
		t.Errorf("Expected 2 items after snapshot mutation, got %d", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", cache.Len())
	}
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[int, string]()
	const numGoroutines = 50
	const numOperations = 200

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				cache.Set(id*numOperations+j, fmt.Sprintf("value-%d-%d", id, j))
			}
		}(i)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				cache.Get(id*numOperations + j)
				cache.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() != numGoroutines*numOperations {
		t.Errorf("Expected %d items, got %d", numGoroutines*numOperations, cache.Len())
	}
}
