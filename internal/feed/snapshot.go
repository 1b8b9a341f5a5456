package feed

import (
	"fmt"
	"strings"

	"github.com/tunza-app/tunza/internal/classify"
	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
	"github.com/tunza-app/tunza/internal/eventlog"
	"github.com/tunza-app/tunza/internal/i18n"
	"github.com/tunza-app/tunza/internal/remote"
	"github.com/tunza-app/tunza/internal/schedule"
)

// Snapshot renders a plain-text household summary: pregnancy progress, each
// baby's age and feeding stage, the daily tip, upcoming reminders, and the
// most recent feeding sessions from the local journal.
func (b *Builder) Snapshot(user remote.User, babies []remote.Baby, reminders []remote.Reminder, tip remote.Tip, journal []eventlog.Event) string {
	var sb strings.Builder
	classifier := classify.New(b.Clock)

	if user.DueDate != "" {
		g := classifier.Gestation(user.DueDate)
		if g.Trimester != config.TrimesterUnknown && g.WeeksPregnant != nil {
			sb.WriteString(b.Translator.MsgData(config.TKeySnapshotWeek, map[string]any{
				"Trimester": g.Trimester,
				"Week":      *g.WeeksPregnant,
			}))
			sb.WriteString("\n")
		}
	}

	for _, baby := range babies {
		if !baby.IsActive {
			continue
		}
		age := classifier.Age(baby.DateOfBirth)
		sb.WriteString(b.Translator.MsgData(config.TKeySnapshotAge, map[string]any{
			"Name": baby.Name,
			"Age":  age.Label,
		}))
		sb.WriteString("\n")

		bracket := schedule.FeedingFor(classifier.AgeMonths(baby.DateOfBirth))
		sb.WriteString("  ")
		sb.WriteString(b.Translator.MsgData(config.TKeySnapshotStage, map[string]any{
			"Title": bracket.Title,
		}))
		sb.WriteString("\n")
	}

	if tip.Tip != "" {
		sb.WriteString(b.Translator.MsgData(config.TKeySnapshotTip, map[string]any{"Tip": tip.Tip}))
		sb.WriteString("\n")
	}

	upcoming := upcomingReminders(b.Clock, reminders)
	if len(upcoming) == 0 {
		sb.WriteString(b.Translator.Msg(config.TKeySnapshotNoRem))
		sb.WriteString("\n")
	} else {
		sb.WriteString(b.Translator.Msg(config.TKeySnapshotRemHdr))
		sb.WriteString("\n")
		for _, r := range upcoming {
			fmt.Fprintf(&sb, "  - %s (%s)\n", r.Title, r.ReminderDate)
		}
	}

	writeJournal(&sb, b.Translator, journal)
	return sb.String()
}

// writeJournal appends the most recent feeding sessions. Reminder entries
// carry no timestamp and are omitted; an empty journal writes nothing.
func writeJournal(sb *strings.Builder, tr *i18n.Translator, journal []eventlog.Event) {
	var shown int
	for _, e := range journal {
		if e.Feeding == nil {
			continue
		}
		if shown == 0 {
			sb.WriteString(tr.Msg(config.TKeySnapshotLogHdr))
			sb.WriteString("\n")
		}
		fmt.Fprintf(sb, "  - %s (%s)\n", e.Feeding.FeedType, e.Feeding.Time)
		shown++
		if shown == config.SnapshotJournalMax {
			return
		}
	}
}

// upcomingReminders keeps pending reminders from today onward, in the order
// the server returned them.
func upcomingReminders(clock datemath.Clock, reminders []remote.Reminder) []remote.Reminder {
	today := datemath.Normalize(clock.Now())

	var upcoming []remote.Reminder
	for _, r := range reminders {
		if r.Completed {
			continue
		}
		date, err := datemath.ParseDate(r.ReminderDate)
		if err != nil {
			continue
		}
		if datemath.Normalize(date).Before(today) {
			continue
		}
		upcoming = append(upcoming, r)
	}
	return upcoming
}
