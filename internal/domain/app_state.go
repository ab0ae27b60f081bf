package domain

// AppState is the process-wide state persisted between sessions. It is created at start,
// checkpointed periodically and saved on teardown by whoever owns it.
type AppState struct {
	Tracker *EntryManager `json:"tracker"`
}

// NewAppState returns a state holding an empty manager.
func NewAppState() *AppState {
	return &AppState{Tracker: NewEntryManager()}
}

// Normalize repairs a freshly decoded state: it fills a missing manager and restores display order.
func (s *AppState) Normalize() {
	if s.Tracker == nil {
		s.Tracker = NewEntryManager()
	}
	if s.Tracker.Entries == nil {
		s.Tracker.Entries = []Entry{}
	}
	if !s.Tracker.Filter.valid() {
		s.Tracker.Filter = NoFilter
	}
	s.Tracker.Sort()
}
