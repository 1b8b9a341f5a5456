package datemath

import (
	"errors"
	"time"

	"github.com/tunza-app/tunza/internal/config"
)

const hoursPerDay = 24

// Normalize strips the time-of-day from t, keeping its calendar date and location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from a to b.
// Time-of-day and location offsets in either input are irrelevant: both are
// reduced to their calendar date before subtraction, so DST transitions and
// leap days are handled by the calendar itself.
// The result is negative when b precedes a, and DaysBetween(a, b) == -DaysBetween(b, a).
func DaysBetween(a, b time.Time) int {
	ua := asUTCDate(a)
	ub := asUTCDate(b)
	return int(ub.Sub(ua).Hours() / hoursPerDay)
}

// asUTCDate re-expresses the calendar date of t at UTC midnight.
// Two UTC midnights are always an exact multiple of 24h apart.
func asUTCDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateLayouts are the accepted layouts for dates of birth and due dates,
// tried in order. The API sends RFC 3339 timestamps; forms and imports
// produce the shorter variants.
var dateLayouts = []string{
	config.DateFormatFullDash,
	config.DateFormatFullBasic,
	config.DateFormatRFC3339,
	config.DateFormatFullT,
	config.DateFormatLocalSec,
	config.DateFormatLocalMin,
}

// ParseDate parses a date string in any of the accepted layouts.
// Callers convert the error into a sentinel descriptor; it never propagates
// past the classification layer.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
