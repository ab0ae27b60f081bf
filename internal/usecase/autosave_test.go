package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingSaver struct {
	calls    atomic.Int32
	err      error
	lastLive atomic.Bool
}

func (s *countingSaver) Save(ctx context.Context) error {
	s.calls.Add(1)
	s.lastLive.Store(ctx.Err() == nil)
	return s.err
}

func TestAutosaver_SavesOnTickAndOnShutdown(t *testing.T) {
	saver := &countingSaver{}
	a := NewAutosaver(AutosaverConfig{
		Saver:    saver,
		Interval: 10 * time.Millisecond,
		Logger:   zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	deadline := time.After(2 * time.Second)
	for saver.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected periodic saves, got %d", saver.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	before := saver.calls.Load()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("autosaver did not stop")
	}

	if saver.calls.Load() <= before {
		t.Fatal("expected a final save after cancellation")
	}
	if !saver.lastLive.Load() {
		t.Fatal("final save must run with a live context")
	}
}

func TestAutosaver_ErrorsDoNotStopLoop(t *testing.T) {
	saver := &countingSaver{err: errors.New("backend down")}
	a := NewAutosaver(AutosaverConfig{
		Saver:    saver,
		Interval: 5 * time.Millisecond,
		Logger:   zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	deadline := time.After(2 * time.Second)
	for saver.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("loop stopped after failures, calls=%d", saver.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err == nil {
		t.Fatal("expected the final save error to be returned")
	}
}

func TestNewAutosaver_Defaults(t *testing.T) {
	a := NewAutosaver(AutosaverConfig{Saver: &countingSaver{}})
	if a.interval != DefaultAutosaveInterval {
		t.Fatalf("expected default interval, got %v", a.interval)
	}
	if a.saveTimeout != DefaultSaveTimeout {
		t.Fatalf("expected default save timeout, got %v", a.saveTimeout)
	}
}
