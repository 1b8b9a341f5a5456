package feed_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/eventlog"
	"github.com/tunza-app/tunza/internal/feed"
	"github.com/tunza-app/tunza/internal/i18n"
	"github.com/tunza-app/tunza/internal/remote"
	"github.com/tunza-app/tunza/internal/schedule"
)

type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var fixedNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newBuilder(trigger string) *feed.Builder {
	return &feed.Builder{
		Clock:           MockClock{CurrentTime: fixedNow},
		Translator:      i18n.New("en"),
		ReminderTrigger: trigger,
	}
}

// TestCalendar_ReminderEvents verifies reminders become events with
// localized summaries and stable UIDs.
func TestCalendar_ReminderEvents(t *testing.T) {
	builder := newBuilder("")
	reminders := []remote.Reminder{
		{ID: 1, Title: "Antenatal visit", ReminderDate: "2025-07-01"},
		{ID: 2, Title: "Done already", ReminderDate: "2025-05-01", Completed: true},
	}

	data, err := builder.Calendar(nil, reminders)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, config.ICalProdid)
	assert.Contains(t, ics, "Reminder: Antenatal visit")
	assert.NotContains(t, ics, "Done already", "Completed reminders should be excluded")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250701")
}

// TestCalendar_ImmunizationEvents verifies each schedule dose is projected
// from the baby's date of birth.
func TestCalendar_ImmunizationEvents(t *testing.T) {
	builder := newBuilder("")
	babies := []remote.Baby{
		{ID: 1, Name: "Zuri", DateOfBirth: "2025-06-01", IsActive: true},
	}

	data, err := builder.Calendar(babies, nil)
	require.NoError(t, err)

	ics := string(data)
	// BCG is due at birth.
	assert.Contains(t, ics, "Vaccine: BCG")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250601")
	// Pentavalent dose 1 is due at 6 weeks.
	assert.Contains(t, ics, "Vaccine: Pentavalent (dose 1)")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250713")
	// One event per dose in the schedule.
	assert.Equal(t, len(schedule.ImmunizationSchedule()), strings.Count(ics, "BEGIN:VEVENT"))
}

// TestCalendar_InactiveBabySkipped verifies archived profiles contribute
// no events.
func TestCalendar_InactiveBabySkipped(t *testing.T) {
	builder := newBuilder("")
	babies := []remote.Baby{
		{ID: 1, Name: "Zuri", DateOfBirth: "2025-06-01", IsActive: false},
	}

	data, err := builder.Calendar(babies, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "BEGIN:VEVENT")
}

// TestCalendar_Alarms verifies the configured trigger produces VALARM blocks.
func TestCalendar_Alarms(t *testing.T) {
	builder := newBuilder("-P1D")
	reminders := []remote.Reminder{
		{ID: 1, Title: "Clinic", ReminderDate: "2025-07-01"},
	}

	data, err := builder.Calendar(nil, reminders)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VALARM")
	assert.Contains(t, ics, "TRIGGER:-P1D")
	assert.Contains(t, ics, "ACTION:DISPLAY")
}

// TestCalendar_StableUIDs verifies two generations produce identical UIDs.
func TestCalendar_StableUIDs(t *testing.T) {
	builder := newBuilder("")
	reminders := []remote.Reminder{
		{ID: 1, Title: "Clinic", ReminderDate: "2025-07-01"},
	}

	first, err := builder.Calendar(nil, reminders)
	require.NoError(t, err)
	second, err := builder.Calendar(nil, reminders)
	require.NoError(t, err)

	assert.Equal(t, extractUID(t, string(first)), extractUID(t, string(second)))
}

func extractUID(t *testing.T, ics string) string {
	t.Helper()
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			return line
		}
	}
	t.Fatal("no UID line in calendar output")
	return ""
}

// TestCalendar_BadDatesSkipped verifies malformed dates are dropped rather
// than failing the whole feed.
func TestCalendar_BadDatesSkipped(t *testing.T) {
	builder := newBuilder("")
	reminders := []remote.Reminder{
		{ID: 1, Title: "Broken", ReminderDate: "not-a-date"},
		{ID: 2, Title: "Clinic", ReminderDate: "2025-07-01"},
	}
	babies := []remote.Baby{
		{ID: 1, Name: "Zuri", DateOfBirth: "??", IsActive: true},
	}

	data, err := builder.Calendar(babies, reminders)
	require.NoError(t, err)

	ics := string(data)
	assert.NotContains(t, ics, "Broken")
	assert.Contains(t, ics, "Clinic")
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
}

// TestVCards_Export verifies active babies serialize with FN and BDAY.
func TestVCards_Export(t *testing.T) {
	builder := newBuilder("")
	babies := []remote.Baby{
		{ID: 1, Name: "Zuri", DateOfBirth: "2025-06-01", IsActive: true},
		{ID: 2, Name: "Archived", DateOfBirth: "2023-01-01", IsActive: false},
	}

	data, err := builder.VCards(babies)
	require.NoError(t, err)

	vcf := string(data)
	assert.Contains(t, vcf, "BEGIN:VCARD")
	assert.Contains(t, vcf, "FN:Zuri")
	assert.Contains(t, vcf, "BDAY:2025-06-01")
	assert.NotContains(t, vcf, "Archived")
}

// TestSnapshot_Household verifies the text summary covers pregnancy, ages,
// tip, and upcoming reminders.
func TestSnapshot_Household(t *testing.T) {
	builder := newBuilder("")
	user := remote.User{FullName: "Amina", DueDate: "2025-12-01"}
	babies := []remote.Baby{
		{ID: 1, Name: "Zuri", DateOfBirth: "2025-06-01", IsActive: true},
	}
	reminders := []remote.Reminder{
		{ID: 1, Title: "Clinic", ReminderDate: "2025-07-01"},
		{ID: 2, Title: "Past", ReminderDate: "2025-01-01"},
	}
	tip := remote.Tip{Tip: "Stay hydrated."}

	out := builder.Snapshot(user, babies, reminders, tip, nil)

	assert.Contains(t, out, config.TrimesterTwo)
	assert.Contains(t, out, "Zuri is 2 weeks")
	assert.Contains(t, out, "Feeding stage: 0-1 Months")
	assert.Contains(t, out, "Tip of the day: Stay hydrated.")
	assert.Contains(t, out, "Upcoming reminders:")
	assert.Contains(t, out, "Clinic")
	assert.NotContains(t, out, "Past", "Reminders before today should be hidden")
}

// TestSnapshot_NoReminders verifies the empty-state line and that an empty
// journal adds no section.
func TestSnapshot_NoReminders(t *testing.T) {
	builder := newBuilder("")

	out := builder.Snapshot(remote.User{}, nil, nil, remote.Tip{}, nil)

	assert.Contains(t, out, "No upcoming reminders.")
	assert.NotContains(t, out, "Recent feedings:")
}

// TestSnapshot_JournalEntries verifies the recent-feedings section: capped
// length, feedings only, reminders without timestamps skipped.
func TestSnapshot_JournalEntries(t *testing.T) {
	builder := newBuilder("")
	journal := []eventlog.Event{
		{Kind: config.EventKindFeeding, Feeding: &eventlog.FeedingLog{Time: "2025-06-15T09:00", FeedType: config.FeedTypeBreast}},
		{Kind: config.EventKindReminder, Reminder: &eventlog.Reminder{ReminderType: config.ReminderTypeFeeding}},
		{Kind: config.EventKindFeeding, Feeding: &eventlog.FeedingLog{Time: "2025-06-15T06:00", FeedType: config.FeedTypeFormula}},
		{Kind: config.EventKindFeeding, Feeding: &eventlog.FeedingLog{Time: "2025-06-15T03:00", FeedType: config.FeedTypeBottle}},
		{Kind: config.EventKindFeeding, Feeding: &eventlog.FeedingLog{Time: "2025-06-14T23:00", FeedType: config.FeedTypeSolids}},
	}

	out := builder.Snapshot(remote.User{}, nil, nil, remote.Tip{}, journal)

	assert.Contains(t, out, "Recent feedings:")
	assert.Contains(t, out, "breast (2025-06-15T09:00)")
	assert.Contains(t, out, "formula (2025-06-15T06:00)")
	assert.Contains(t, out, "bottle (2025-06-15T03:00)")
	assert.NotContains(t, out, "solids", "Entries past the cap should be dropped")
}
