package eventlog

import (
	"slices"

	"github.com/tunza-app/tunza/internal/config"
)

// Event is one user-recorded entry of the care journal. Kind discriminates
// which of the per-kind field groups is populated; the store never mutates
// an event in place — edits are modeled as delete + recreate.
type Event struct {
	// ID is the creation timestamp in milliseconds. Unique and
	// monotonically increasing within one store.
	ID   int64  `json:"id"`
	Kind string `json:"kind"`

	// Date is the display string stamped at creation.
	Date string `json:"date"`

	Feeding  *FeedingLog `json:"feeding,omitempty"`
	Reminder *Reminder   `json:"reminder,omitempty"`
}

// FeedingLog records a single feeding session.
type FeedingLog struct {
	// Time is the session timestamp in "2006-01-02T15:04" form, as
	// submitted by the log form. It is the recency sort key.
	Time     string  `json:"time"`
	FeedType string  `json:"type"`
	Duration int     `json:"duration,omitempty"` // minutes
	Amount   float64 `json:"amount,omitempty"`   // oz
	Notes    string  `json:"notes,omitempty"`
}

// Reminder records a recurring reminder request. Only the interval and
// metadata are stored; nothing here schedules notifications.
type Reminder struct {
	ReminderType string `json:"type"`
	IntervalMin  int    `json:"interval"`
	Enabled      bool   `json:"enabled"`
}

// feedTypes are the accepted feeding session types.
var feedTypes = []string{
	config.FeedTypeBreast,
	config.FeedTypeBottle,
	config.FeedTypeFormula,
	config.FeedTypeSolids,
}

// FeedTypes returns the accepted feeding session types.
func FeedTypes() []string {
	return slices.Clone(feedTypes)
}

// ValidFeedType reports whether t is an accepted feeding session type.
func ValidFeedType(t string) bool {
	return slices.Contains(feedTypes, t)
}

// NewFeedingLog builds an unpersisted feeding event. The ID and Date are
// assigned by the store on Append.
func NewFeedingLog(log FeedingLog) Event {
	return Event{Kind: config.EventKindFeeding, Feeding: &log}
}

// NewReminder builds an unpersisted reminder event. A missing interval gets
// the standard feeding gap; a zero interval after that means disabled.
func NewReminder(r Reminder) Event {
	if r.Enabled && r.IntervalMin == config.DisabledInterval {
		r.IntervalMin = config.DefaultReminderGap
	}
	return Event{Kind: config.EventKindReminder, Reminder: &r}
}

// timeKey returns the recency sort key and whether the event has one.
// Reminders carry no timestamp and fall back to insertion order.
func (e Event) timeKey() (string, bool) {
	if e.Feeding != nil && e.Feeding.Time != "" {
		return e.Feeding.Time, true
	}
	return "", false
}
