// Package feed renders the household's care schedule as standard exchange
// formats: an iCalendar feed of reminders and immunization due dates, and a
// vCard export of the child profiles.
package feed

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"

	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
	"github.com/tunza-app/tunza/internal/i18n"
	"github.com/tunza-app/tunza/internal/remote"
	"github.com/tunza-app/tunza/internal/schedule"
)

// Builder converts reminders and immunization schedules into calendar data.
type Builder struct {
	Clock           datemath.Clock
	Translator      *i18n.Translator
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D"), empty disables alarms
}

// Calendar renders the full care calendar: one event per server reminder and
// one event per projected immunization dose for each active baby.
func (b *Builder) Calendar(babies []remote.Baby, reminders []remote.Reminder) ([]byte, error) {
	start := time.Now()
	log := slog.With(slog.String(config.LogKeyComponent, config.CompFeed))

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := b.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ reminders, doses, skipped int }{}

	for _, r := range reminders {
		if r.Completed {
			continue
		}
		date, err := datemath.ParseDate(r.ReminderDate)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, r.ReminderDate)
			stats.skipped++
			continue
		}
		summary := b.Translator.MsgData(config.TKeyEvtReminder, map[string]any{"Title": r.Title})
		event := b.newEvent(uid(r.Title, date), summary, date)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
		stats.reminders++
	}

	for _, baby := range babies {
		if !baby.IsActive {
			continue
		}
		dob, err := datemath.ParseDate(baby.DateOfBirth)
		if err != nil {
			log.Debug(config.MsgSkippedDate,
				config.LogKeyName, baby.Name,
				config.LogKeyValue, baby.DateOfBirth,
			)
			stats.skipped++
			continue
		}

		today := datemath.Normalize(now)
		for _, dose := range schedule.ImmunizationSchedule() {
			due := dose.DueDate(dob)
			daysOut := datemath.DaysBetween(today, due)
			if daysOut >= 0 && daysOut <= config.DaysPerWeek {
				log.Info(config.MsgVaccineDueSoon,
					config.LogKeyName, baby.Name,
					config.LogKeyDueDate, due.Format(config.DateFormatFullDash),
				)
			}
			summary := b.doseSummary(dose)
			event := b.newEvent(uid(baby.Name+"/"+dose.Vaccine, due), summary, due)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
			stats.doses++
		}
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgFeedGenerated,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyReminders, stats.reminders),
			slog.Int(config.LogKeyDoses, stats.doses),
			slog.Int(config.LogKeySkipped, stats.skipped),
		),
		slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
	)
	return buf.Bytes(), nil
}

// VCards renders the active baby profiles as a vCard 4.0 stream.
func (b *Builder) VCards(babies []remote.Baby) ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	for _, baby := range babies {
		if !baby.IsActive {
			continue
		}

		card := make(vcard.Card)
		card.SetValue(vcard.FieldFormattedName, baby.Name)
		if dob, err := datemath.ParseDate(baby.DateOfBirth); err == nil {
			card.SetValue(vcard.FieldBirthday, dob.Format(config.DateFormatFullDash))
		}
		card.SetValue(vcard.FieldUID, uidForName(baby.Name))
		vcard.ToV4(card)

		if err := enc.Encode(card); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return buf.Bytes(), nil
}

// doseSummary picks the single-dose or numbered-dose phrasing.
func (b *Builder) doseSummary(dose schedule.ImmunizationDose) string {
	if dose.TotalDoses <= 1 {
		return b.Translator.MsgData(config.TKeyEvtVaccineOne, map[string]any{"Name": dose.Vaccine})
	}
	return b.Translator.MsgData(config.TKeyEvtVaccine, map[string]any{
		"Name": dose.Vaccine,
		"Dose": dose.Dose,
	})
}

// newEvent builds an all-day event with an optional display alarm.
func (b *Builder) newEvent(uid, summary string, date time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid)
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(date)
	event.Props.Set(dtStartProp)

	if b.ReminderTrigger != "" {
		alarm := ical.NewComponent(config.ICalComponent)
		alarm.Props.SetText(config.PropAction, config.ICalAction)
		alarm.Props.SetText(config.PropDescription, summary)
		triggerProp := ical.NewProp(config.PropTrigger)
		triggerProp.Value = b.ReminderTrigger
		alarm.Props.Set(triggerProp)
		event.Children = append(event.Children, alarm)
	}
	return event
}

// uid derives a stable event identifier so calendar clients do not see
// duplicates across refreshes.
func uid(name string, date time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, date.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), date.Year(), config.ICalDomain)
}

func uidForName(name string) string {
	hash := sha256.Sum256([]byte(config.UIDSalt + name))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
