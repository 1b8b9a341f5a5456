// Package classify converts raw reference dates (a baby's date of birth,
// a pregnancy due date) into structured temporal descriptors.
//
// Every function here is total: invalid, missing, or future-dated input
// resolves to a documented sentinel descriptor, never an error that escapes
// to the caller.
package classify

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
)

// AgeDescriptor is a structured breakdown of an infant's age.
// Nil numeric fields signal "unknown" (missing or unparseable date of
// birth), distinct from zero values (born today).
type AgeDescriptor struct {
	// Label is the single most relevant human unit, e.g. "3 weeks".
	Label  string `json:"label"`
	Days   *int   `json:"days"`
	Weeks  *int   `json:"weeks"`
	Months *int   `json:"months"`
	Years  *int   `json:"years"`
}

// Classifier derives age and gestation descriptors relative to an injected
// clock. It holds no other state and is safe for concurrent use.
type Classifier struct {
	Clock datemath.Clock
}

// New returns a Classifier bound to the given clock.
func New(clock datemath.Clock) *Classifier {
	return &Classifier{Clock: clock}
}

// Age classifies a date of birth into an AgeDescriptor.
//
// Label ranges are mutually exclusive and ordered, first match wins:
// up to 7 days old the label counts days, up to 30 days it counts weeks,
// up to 365 days it counts months, beyond that years.
func (c *Classifier) Age(dob string) AgeDescriptor {
	unknown := AgeDescriptor{Label: config.LabelAgeUnknown}

	if dob == "" {
		return unknown
	}
	born, err := datemath.ParseDate(dob)
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompClassify,
			config.LogKeyValue, dob,
		)
		return unknown
	}

	today := datemath.Normalize(c.Clock.Now())
	daysOld := datemath.DaysBetween(datemath.Normalize(born), today)

	if daysOld < 0 {
		zero := 0
		return AgeDescriptor{
			Label:  config.LabelNotBornYet,
			Days:   &zero,
			Weeks:  &zero,
			Months: &zero,
			Years:  &zero,
		}
	}

	weeks := daysOld / config.DaysPerWeek
	months := int(math.Floor(float64(daysOld) / config.AvgDaysPerMonth))
	years := int(math.Floor(float64(daysOld) / config.AvgDaysPerYear))

	var label string
	switch {
	case daysOld <= config.AgeDaysLabelMax:
		label = unitLabel(daysOld, config.UnitDay)
	case daysOld <= config.AgeWeeksLabelMax:
		label = unitLabel(weeks, config.UnitWeek)
	case daysOld <= config.AgeMonthLabelMax:
		label = unitLabel(months, config.UnitMonth)
	default:
		label = unitLabel(years, config.UnitYear)
	}

	return AgeDescriptor{
		Label:  label,
		Days:   &daysOld,
		Weeks:  &weeks,
		Months: &months,
		Years:  &years,
	}
}

// AgeMonths returns the bounded age-in-months value used for schedule
// bracket lookups: days/30.44, floored at 0 for unborn or unknown subjects
// and capped at 24 months. It is a lookup key, not a display value.
func (c *Classifier) AgeMonths(dob string) float64 {
	if dob == "" {
		return 0
	}
	born, err := datemath.ParseDate(dob)
	if err != nil {
		return 0
	}

	today := datemath.Normalize(c.Clock.Now())
	daysOld := datemath.DaysBetween(datemath.Normalize(born), today)
	if daysOld < 0 {
		return 0
	}

	return math.Min(config.AgeMonthsCap, float64(daysOld)/config.AvgDaysPerMonth)
}

// unitLabel renders "1 week" / "3 weeks" style labels. The "s" is appended
// unless the count is exactly one.
func unitLabel(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
