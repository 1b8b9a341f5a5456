package eventlog_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/eventlog"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// memPersister is an in-memory Persister recording every Save call.
type memPersister struct {
	events    []eventlog.Event
	saveCalls int
	failSave  bool
}

func (m *memPersister) Load() ([]eventlog.Event, error) {
	return m.events, nil
}

func (m *memPersister) Save(events []eventlog.Event) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.saveCalls++
	m.events = append([]eventlog.Event(nil), events...)
	return nil
}

func newTestStore(t *testing.T) (*eventlog.Store, *MockClock, *memPersister) {
	t.Helper()
	clock := &MockClock{CurrentTime: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)}
	persister := &memPersister{}
	store, err := eventlog.New(clock, persister)
	require.NoError(t, err)
	return store, clock, persister
}

func TestAppend_AssignsIDAndPersistsEagerly(t *testing.T) {
	store, clock, persister := newTestStore(t)

	stored, err := store.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{
		Time:     "2025-06-15T07:30",
		FeedType: config.FeedTypeBreast,
		Duration: 15,
	}))

	require.NoError(t, err)
	assert.Equal(t, clock.CurrentTime.UnixMilli(), stored.ID)
	assert.Equal(t, "6/15/2025", stored.Date)
	assert.Equal(t, config.EventKindFeeding, stored.Kind)
	assert.Equal(t, 1, persister.saveCalls, "Every append must persist immediately")
}

func TestAppend_IDsStrictlyIncreaseUnderFrozenClock(t *testing.T) {
	store, _, _ := newTestStore(t)

	first, err := store.Append(eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypeFeeding, IntervalMin: 180, Enabled: true}))
	require.NoError(t, err)
	second, err := store.Append(eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypeBottle, IntervalMin: 240, Enabled: true}))
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID, "IDs must stay unique even when the clock does not advance")
}

func TestList_SortsByTimeDescending(t *testing.T) {
	store, clock, _ := newTestStore(t)

	// Append out of chronological order.
	times := []string{"2025-06-14T22:00", "2025-06-15T07:30", "2025-06-13T09:15"}
	for _, ts := range times {
		clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
		_, err := store.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{Time: ts, FeedType: config.FeedTypeBottle}))
		require.NoError(t, err)
	}

	listed := store.List()
	require.Len(t, listed, 3)
	assert.Equal(t, "2025-06-15T07:30", listed[0].Feeding.Time, "Most recent session must come first")
	assert.Equal(t, "2025-06-14T22:00", listed[1].Feeding.Time)
	assert.Equal(t, "2025-06-13T09:15", listed[2].Feeding.Time)
}

func TestList_RemindersKeepInsertionOrderAfterTimedEvents(t *testing.T) {
	store, clock, _ := newTestStore(t)

	r1, err := store.Append(eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypeFeeding, IntervalMin: 180, Enabled: true}))
	require.NoError(t, err)
	clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
	r2, err := store.Append(eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypePump, IntervalMin: 360, Enabled: true}))
	require.NoError(t, err)
	clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
	feed, err := store.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{Time: "2025-06-15T07:30", FeedType: config.FeedTypeBreast}))
	require.NoError(t, err)

	listed := store.List()
	require.Len(t, listed, 3)
	assert.Equal(t, feed.ID, listed[0].ID, "Timed events sort ahead of reminders")
	// The store prepends on append, so the newer reminder precedes the older.
	assert.Equal(t, r2.ID, listed[1].ID)
	assert.Equal(t, r1.ID, listed[2].ID)
}

func TestNewReminder_DefaultInterval(t *testing.T) {
	enabled := eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypeFeeding, Enabled: true})
	assert.Equal(t, config.DefaultReminderGap, enabled.Reminder.IntervalMin, "Enabled reminders without an interval get the standard gap")

	disabled := eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypeFeeding, Enabled: false})
	assert.Equal(t, config.DisabledInterval, disabled.Reminder.IntervalMin)

	explicit := eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypePump, IntervalMin: 90, Enabled: true})
	assert.Equal(t, 90, explicit.Reminder.IntervalMin)
}

func TestValidFeedType(t *testing.T) {
	for _, ft := range eventlog.FeedTypes() {
		assert.True(t, eventlog.ValidFeedType(ft), ft)
	}
	assert.Contains(t, eventlog.FeedTypes(), config.FeedTypeFormula)

	assert.False(t, eventlog.ValidFeedType("juice"))
	assert.False(t, eventlog.ValidFeedType(""))
}

func TestRemove(t *testing.T) {
	store, clock, persister := newTestStore(t)

	kept, err := store.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{Time: "2025-06-15T07:30", FeedType: config.FeedTypeBreast}))
	require.NoError(t, err)
	clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
	doomed, err := store.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{Time: "2025-06-15T08:30", FeedType: config.FeedTypeSolids}))
	require.NoError(t, err)

	t.Run("removes by id and re-persists", func(t *testing.T) {
		savesBefore := persister.saveCalls
		require.NoError(t, store.Remove(doomed.ID))

		listed := store.List()
		require.Len(t, listed, 1)
		assert.Equal(t, kept.ID, listed[0].ID)
		assert.Equal(t, savesBefore+1, persister.saveCalls)
	})

	t.Run("nonexistent id is a no-op", func(t *testing.T) {
		savesBefore := persister.saveCalls
		require.NoError(t, store.Remove(999999))

		assert.Equal(t, 1, store.Len(), "Collection must be unchanged")
		assert.Equal(t, savesBefore, persister.saveCalls, "No-op removes must not rewrite the journal")
	})
}

func TestAppend_SaveFailureLeavesCollectionUnchanged(t *testing.T) {
	store, _, persister := newTestStore(t)
	persister.failSave = true

	_, err := store.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{Time: "2025-06-15T07:30", FeedType: config.FeedTypeBreast}))

	assert.Error(t, err)
	assert.Zero(t, store.Len(), "Failed persistence must not leave a phantom event in memory")
}

func TestNew_RestoresLastIDFromJournal(t *testing.T) {
	clock := &MockClock{CurrentTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	persister := &memPersister{events: []eventlog.Event{
		{ID: 1750000000000, Kind: config.EventKindFeeding, Feeding: &eventlog.FeedingLog{Time: "2025-06-15T07:30", FeedType: config.FeedTypeBreast}},
	}}

	store, err := eventlog.New(clock, persister)
	require.NoError(t, err)

	// The clock sits far behind the journal's newest id; appends must still
	// produce strictly larger ids.
	stored, err := store.Append(eventlog.NewReminder(eventlog.Reminder{ReminderType: config.ReminderTypeFeeding, IntervalMin: 120, Enabled: true}))
	require.NoError(t, err)
	assert.Greater(t, stored.ID, int64(1750000000000))
}

func TestFilePersister_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	persister, err := eventlog.NewFilePersister(dir)
	require.NoError(t, err)

	t.Run("missing journal loads empty", func(t *testing.T) {
		events, err := persister.Load()
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("save then load preserves events", func(t *testing.T) {
		in := []eventlog.Event{
			{ID: 42, Kind: config.EventKindFeeding, Date: "6/15/2025", Feeding: &eventlog.FeedingLog{Time: "2025-06-15T07:30", FeedType: config.FeedTypeBreast, Duration: 15}},
			{ID: 43, Kind: config.EventKindReminder, Date: "6/15/2025", Reminder: &eventlog.Reminder{ReminderType: config.ReminderTypePump, IntervalMin: 240, Enabled: true}},
		}
		require.NoError(t, persister.Save(in))

		out, err := persister.Load()
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("corrupt journal surfaces a decode error", func(t *testing.T) {
		corrupt, err := eventlog.NewFilePersister(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(corrupt.Path, []byte("{not json"), 0600))

		_, err = corrupt.Load()
		assert.Error(t, err)
	})
}
