package postgres

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"

	"github.com/iho/expenses-tracker/internal/infrastructure/idgen"
	pginfra "github.com/iho/expenses-tracker/internal/infrastructure/postgres"
	"github.com/iho/expenses-tracker/internal/usecase"
)

func TestStateStoreLoad(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(loadStateQuery)).
		WithArgs("expenses-tracker").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow([]byte(`{"tracker":{}}`)))

	store := newStateStoreWithPool(mockPool)
	got, err := store.Load(context.Background(), "expenses-tracker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"tracker":{}}` {
		t.Fatalf("unexpected payload %s", got)
	}

	assertExpectations(t, mockPool)
}

func TestStateStoreLoadMissing(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(regexp.QuoteMeta(loadStateQuery)).
		WithArgs("absent").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}))

	store := newStateStoreWithPool(mockPool)
	if _, err := store.Load(context.Background(), "absent"); !errors.Is(err, usecase.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestStateStoreSave(t *testing.T) {
	mockPool := newMockPool(t)
	payload := []byte(`{"tracker":{"entries":[]}}`)
	mockPool.ExpectExec(regexp.QuoteMeta(saveStateQuery)).
		WithArgs("expenses-tracker", payload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := newStateStoreWithPool(mockPool)
	if err := store.Save(context.Background(), "expenses-tracker", payload); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestStateStoreSaveError(t *testing.T) {
	mockPool := newMockPool(t)
	dbErr := errors.New("connection reset")
	mockPool.ExpectExec(regexp.QuoteMeta(saveStateQuery)).
		WithArgs("k", []byte("x")).
		WillReturnError(dbErr)

	store := newStateStoreWithPool(mockPool)
	if err := store.Save(context.Background(), "k", []byte("x")); !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestStateStorePing(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectPing()

	store := newStateStoreWithPool(mockPool)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	assertExpectations(t, mockPool)

	down := errors.New("connection refused")
	mockPool.ExpectPing().WillReturnError(down)
	if err := store.Ping(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected ping error, got %v", err)
	}
}

func TestStateStoreAgainstDatabase(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	if err := pginfra.RunMigrations(databaseURL, zerolog.Nop()); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, databaseURL, 2, 0)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Close()

	store := NewStateStore(pool)
	key := "test-" + idgen.NewULIDGenerator().Generate()

	if _, err := store.Load(ctx, key); !errors.Is(err, usecase.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
	for _, payload := range []string{`{"v":1}`, `{"v":2}`} {
		if err := store.Save(ctx, key, []byte(payload)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := store.Load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected latest payload, got %s", got)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM app_state WHERE app_key = $1`, key); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
