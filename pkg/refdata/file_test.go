package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFileStore_SetAndGet(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	key := Key{Kind: KindHeroes}

	entry := &Entry{
		Kind:      KindHeroes,
		Language:  "en_us",
		FetchedAt: time.Now().UTC().Truncate(time.Second),
		Data:      json.RawMessage(`[{"id":1,"name":"npc_dota_hero_antimage"}]`),
	}

	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Kind != KindHeroes {
		t.Errorf("Kind = %q, want heroes", got.Kind)
	}
	if !got.FetchedAt.Equal(entry.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, entry.FetchedAt)
	}

	var heroes []map[string]any
	if err := got.Decode(&heroes); err != nil || len(heroes) != 1 {
		t.Errorf("Decode() = %v, %v", heroes, err)
	}
}

func TestFileStore_IndentedOutput(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key := Key{Kind: KindItems}

	if err := store.Set(context.Background(), key, &Entry{Kind: KindItems, Data: json.RawMessage(`[]`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := os.ReadFile(store.Path(key))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"kind\": \"items\"") {
		t.Errorf("file not indented with 4 spaces:\n%s", data)
	}
	if _, err := os.Stat(store.Path(key) + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Error("temporary file left behind")
	}
}

func TestFileStore_NotFound(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Get(context.Background(), Key{Kind: KindHeroes})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_InvalidEntry(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key := Key{Kind: KindHeroes}

	if err := os.WriteFile(store.Path(key), []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := store.Get(context.Background(), key)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Expected ErrInvalidEntry, got %v", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	key := Key{Kind: KindHeroes, Language: "de_de"}

	if err := store.Set(ctx, key, &Entry{Kind: KindHeroes, Data: json.RawMessage(`[]`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after Delete, got %v", err)
	}

	// Deleting twice is fine.
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func TestFileStore_NilEntry(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := store.Set(context.Background(), Key{Kind: KindHeroes}, nil); err == nil {
		t.Error("Expected error for nil entry")
	}
}
