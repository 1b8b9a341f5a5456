package classify

import (
	"log/slog"
	"time"

	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
)

// GestationDescriptor carries the estimated gestational age derived from a
// due date. WeeksPregnant is nil when the due date is missing or
// unparseable; a pointer to zero means the due date sits more than a full
// gestation in the future relative to today.
type GestationDescriptor struct {
	Trimester     string `json:"trimester"`
	WeeksPregnant *int   `json:"weeks_pregnant"`
}

// Gestation estimates gestational age from a due date.
//
// The last menstrual period is assumed to be exactly 280 days (40 weeks)
// before the due date; elapsed days from that estimate to today give the
// pregnancy week, capped at 40. Trimester boundaries are inclusive-below:
// week 13 is already Trimester 2, week 28 already Trimester 3.
func (c *Classifier) Gestation(dueDate string) GestationDescriptor {
	unknown := GestationDescriptor{Trimester: config.TrimesterUnknown}

	if dueDate == "" {
		return unknown
	}
	due, err := datemath.ParseDate(dueDate)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompClassify,
			config.LogKeyValue, dueDate,
		)
		return unknown
	}

	today := datemath.Normalize(c.Clock.Now())
	lmp := datemath.Normalize(due.AddDate(0, 0, -config.GestationDays))

	daysPregnant := datemath.DaysBetween(lmp, today)
	if daysPregnant < 0 {
		// The due date is further out than a full term. Distinct from the
		// fully-unknown case, which keeps WeeksPregnant nil.
		zero := 0
		return GestationDescriptor{Trimester: config.TrimesterUnknown, WeeksPregnant: &zero}
	}

	weeks := daysPregnant / config.DaysPerWeek
	if weeks > config.GestationWeeksMax {
		weeks = config.GestationWeeksMax
	}

	var trimester string
	switch {
	case weeks < config.TrimesterTwoWeek:
		trimester = config.TrimesterOne
	case weeks < config.TrimesterThreeWeek:
		trimester = config.TrimesterTwo
	default:
		trimester = config.TrimesterThree
	}

	return GestationDescriptor{Trimester: trimester, WeeksPregnant: &weeks}
}

// DueDateForWeek inverts the gestation estimate: given a target pregnancy
// week it returns the calendar date at which that week begins. Used when
// projecting checklist items onto the calendar feed.
func (c *Classifier) DueDateForWeek(dueDate string, week int) (time.Time, bool) {
	due, err := datemath.ParseDate(dueDate)
	if err != nil {
		return time.Time{}, false
	}
	lmp := datemath.Normalize(due.AddDate(0, 0, -config.GestationDays))
	return lmp.AddDate(0, 0, week*config.DaysPerWeek), true
}
