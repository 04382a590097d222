package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to a local Redis, skipping when unavailable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewRedisStore_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewRedisStore should panic with nil redis client")
		}
	}()
	NewRedisStore(nil, 0)
}

func TestRedisStore_SetAndGet(t *testing.T) {
	store := NewRedisStore(setupTestRedis(t), 0)
	ctx := context.Background()
	key := Key{Kind: KindHeroes}

	entry := &Entry{
		Kind:      KindHeroes,
		Language:  "en_us",
		FetchedAt: time.Now().UTC(),
		Data:      json.RawMessage(`[{"id":2,"name":"npc_dota_hero_axe"}]`),
	}
	if err := store.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got.Data) != string(entry.Data) {
		t.Errorf("Data = %s, want %s", got.Data, entry.Data)
	}
}

func TestRedisStore_NotFound(t *testing.T) {
	store := NewRedisStore(setupTestRedis(t), 0)

	_, err := store.Get(context.Background(), Key{Kind: KindItems})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()
	key := Key{Kind: KindItems}

	if err := store.Set(ctx, key, &Entry{Kind: KindItems, Data: json.RawMessage(`[]`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	ttl, err := client.TTL(ctx, key.String()).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want (0, 1m]", ttl)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store := NewRedisStore(setupTestRedis(t), 0)
	ctx := context.Background()
	key := Key{Kind: KindHeroes}

	if err := store.Set(ctx, key, &Entry{Kind: KindHeroes, Data: json.RawMessage(`[]`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after Delete, got %v", err)
	}
}
