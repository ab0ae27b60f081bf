package usecase

import (
	"time"

	"github.com/iho/expenses-tracker/internal/domain"
)

// SystemClock reads the wall clock in the local time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) EntryAdded(domain.EntryType)     {}
func (NopMetrics) EntryRemoved()                   {}
func (NopMetrics) EntriesTracked(int)              {}
func (NopMetrics) StateLoaded(error)               {}
func (NopMetrics) StateSaved(time.Duration, error) {}
