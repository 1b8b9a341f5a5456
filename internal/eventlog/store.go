// Package eventlog is the locally persisted journal of user-recorded care
// events: feeding sessions and reminder requests.
//
// The store is designed for a single process writing to a single journal
// file. Every mutation rewrites the full serialized collection; there is no
// batching and no cross-process coordination. An internal mutex makes the
// store safe for concurrent callers within one process, but two processes
// sharing a journal file will still lose updates (last writer wins).
package eventlog

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
)

// Persister abstracts the durable medium behind the store. The production
// implementation is a JSON file; tests substitute an in-memory one.
type Persister interface {
	Load() ([]Event, error)
	Save(events []Event) error
}

// Store is the ordered event collection. Construct with New.
type Store struct {
	mu        sync.Mutex
	clock     datemath.Clock
	persister Persister
	events    []Event
	lastID    int64
}

// New opens a store over the given persister, loading any existing journal.
func New(clock datemath.Clock, persister Persister) (*Store, error) {
	events, err := persister.Load()
	if err != nil {
		return nil, err
	}

	var lastID int64
	for _, e := range events {
		if e.ID > lastID {
			lastID = e.ID
		}
	}

	return &Store{
		clock:     clock,
		persister: persister,
		events:    events,
		lastID:    lastID,
	}, nil
}

// Append assigns an identifier and display date to the event, prepends it
// to the collection, persists the full collection, and returns the stored
// event. IDs are the creation time in milliseconds, bumped when necessary
// to keep them strictly increasing.
func (s *Store) Append(e Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	e.ID = id
	e.Date = now.Format(config.EventDateDisplay)

	updated := make([]Event, 0, len(s.events)+1)
	updated = append(updated, e)
	updated = append(updated, s.events...)

	if err := s.persister.Save(updated); err != nil {
		return Event{}, err
	}
	s.events = updated

	slog.Debug(config.MsgEventAppended,
		config.LogKeyComponent, config.CompEventLog,
		config.LogKeyEventID, e.ID,
		config.LogKeyKind, e.Kind,
	)
	return e, nil
}

// List returns the events sorted by their time field descending (most
// recent first). Events without a time field — reminders — keep their
// insertion order after the timed ones; the sort is stable.
func (s *Store) List() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)

	sortEvents(out)
	return out
}

// Remove deletes the event with the given id and re-persists the
// remainder. Removing an id that does not exist is a no-op, not an error.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if len(kept) == len(s.events) {
		slog.Debug(config.MsgEventNotFound,
			config.LogKeyComponent, config.CompEventLog,
			config.LogKeyEventID, id,
		)
		return nil
	}

	if err := s.persister.Save(kept); err != nil {
		return err
	}
	s.events = kept

	slog.Debug(config.MsgEventRemoved,
		config.LogKeyComponent, config.CompEventLog,
		config.LogKeyEventID, id,
	)
	return nil
}

// Len reports the current number of stored events.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// sortEvents orders timed events newest-first and parks untimed ones after
// them, preserving relative order within each group.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ka, okA := events[i].timeKey()
		kb, okB := events[j].timeKey()
		switch {
		case okA && okB:
			ta, errA := datemath.ParseDate(ka)
			tb, errB := datemath.ParseDate(kb)
			if errA == nil && errB == nil {
				return ta.After(tb)
			}
			// Unparseable keys fall back to lexicographic comparison;
			// the journal format is fixed-width so this still sorts by recency.
			return ka > kb
		case okA:
			return true
		default:
			return false
		}
	})
}
