package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/expenses-tracker/internal/usecase"
)

func TestStateStoreSaveAndLoad(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewStateStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "expenses-tracker", []byte(`{"tracker":{}}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !mr.Exists("state:expenses-tracker") {
		t.Fatalf("expected key state:expenses-tracker to exist")
	}
	if ttl := mr.TTL("state:expenses-tracker"); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}

	val, err := store.Load(ctx, "expenses-tracker")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(val) != `{"tracker":{}}` {
		t.Fatalf("unexpected payload %s", val)
	}
}

func TestStateStoreMissingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewStateStore(client)

	if _, err := store.Load(context.Background(), "absent"); !errors.Is(err, usecase.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestStateStorePing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	store := NewStateStore(client)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	mr.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail once the server is gone")
	}
}
