package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/expenses-tracker/internal/domain"
)

// TrackerUseCase serialises every access to the in-memory state. Readers get copies, so
// the HTTP server and the autosaver never observe a partially applied change.
type TrackerUseCase struct {
	mu      sync.Mutex
	state   *domain.AppState
	repo    StateRepository
	idGen   IDGenerator
	clock   Clock
	metrics Metrics
	logger  zerolog.Logger
}

// TrackerConfig holds the collaborators of a TrackerUseCase.
type TrackerConfig struct {
	Repo    StateRepository
	IDGen   IDGenerator
	Clock   Clock
	Metrics Metrics
	Logger  zerolog.Logger
}

// NewTrackerUseCase creates a use case over an empty state. Call Load to restore a saved one.
func NewTrackerUseCase(cfg TrackerConfig) *TrackerUseCase {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NopMetrics{}
	}

	return &TrackerUseCase{
		state:   domain.NewAppState(),
		repo:    cfg.Repo,
		idGen:   cfg.IDGen,
		clock:   cfg.Clock,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Load replaces the in-memory state with the persisted one. A missing or unreadable state
// is not an error: the tracker starts empty and the problem is logged.
func (uc *TrackerUseCase) Load(ctx context.Context) {
	state, err := uc.repo.Load(ctx)
	uc.metrics.StateLoaded(err)

	switch {
	case errors.Is(err, ErrStateNotFound):
		uc.logger.Info().Msg("no saved state, starting empty")
		state = domain.NewAppState()
	case err != nil:
		uc.logger.Warn().Err(err).Msg("failed to load saved state, starting empty")
		state = domain.NewAppState()
	}
	state.Normalize()

	uc.mu.Lock()
	uc.state = state
	count := len(state.Tracker.Entries)
	uc.mu.Unlock()

	uc.metrics.EntriesTracked(count)
	uc.logger.Debug().Int("entries", count).Str("filter", state.Tracker.Filter.String()).Msg("state loaded")
}

// Save checkpoints a snapshot of the state.
func (uc *TrackerUseCase) Save(ctx context.Context) error {
	uc.mu.Lock()
	snapshot := &domain.AppState{Tracker: uc.state.Tracker.Clone()}
	uc.mu.Unlock()

	start := time.Now()
	err := uc.repo.Save(ctx, snapshot)
	uc.metrics.StateSaved(time.Since(start), err)
	if err != nil {
		return err
	}

	uc.logger.Debug().Int("entries", len(snapshot.Tracker.Entries)).Msg("state saved")
	return nil
}

// Ping checks the state backend.
func (uc *TrackerUseCase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}

// Today is the calendar date drafts default to.
func (uc *TrackerUseCase) Today() domain.Date {
	return domain.DateOf(uc.clock.Now())
}

// AddEntry validates a draft and commits it with a fresh id and creation instant.
func (uc *TrackerUseCase) AddEntry(ctx context.Context, draft domain.NewEntry) (*domain.Entry, error) {
	if err := domain.ValidateNewEntry(draft); err != nil {
		return nil, err
	}

	entry := draft.ToEntry(uc.idGen.Generate(), uc.clock.Now().UTC())

	uc.mu.Lock()
	uc.state.Tracker.AddEntry(entry)
	count := len(uc.state.Tracker.Entries)
	uc.mu.Unlock()

	uc.metrics.EntryAdded(entry.Type)
	uc.metrics.EntriesTracked(count)
	uc.logger.Debug().
		Str("entry_id", entry.ID).
		Str("entry_type", entry.Type.String()).
		Str("amount", entry.Amount.String()).
		Msg("entry added")

	return &entry, nil
}

// RemoveEntry deletes the entry with the given id.
func (uc *TrackerUseCase) RemoveEntry(ctx context.Context, id string) error {
	uc.mu.Lock()
	removed := uc.state.Tracker.RemoveEntryByID(id)
	count := len(uc.state.Tracker.Entries)
	uc.mu.Unlock()

	if !removed {
		return domain.ErrEntryNotFound
	}

	uc.metrics.EntryRemoved()
	uc.metrics.EntriesTracked(count)
	uc.logger.Debug().Str("entry_id", id).Msg("entry removed")

	return nil
}

// SetFilter changes the persisted filter.
func (uc *TrackerUseCase) SetFilter(ctx context.Context, f domain.Filter) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Tracker.SetFilter(f)
}

// Filter returns the active filter.
func (uc *TrackerUseCase) Filter() domain.Filter {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Tracker.Filter
}

// Entries returns the entries visible under the active filter, newest first.
func (uc *TrackerUseCase) Entries(ctx context.Context) ([]domain.Entry, error) {
	now := uc.clock.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Tracker.FilteredEntries(now)
}

// EntriesWithFilter applies f without changing the active filter.
func (uc *TrackerUseCase) EntriesWithFilter(ctx context.Context, f domain.Filter) ([]domain.Entry, error) {
	now := uc.clock.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Tracker.FilteredEntriesBy(f, now)
}

// Summary aggregates the entries visible under the active filter.
func (uc *TrackerUseCase) Summary(ctx context.Context) (domain.Summary, error) {
	now := uc.clock.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Tracker.Summarize(now)
}

// SummaryWithFilter aggregates under f without changing the active filter.
func (uc *TrackerUseCase) SummaryWithFilter(ctx context.Context, f domain.Filter) (domain.Summary, error) {
	now := uc.clock.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Tracker.SummarizeBy(f, now)
}
