package schedule

import (
	"time"

	"github.com/tunza-app/tunza/internal/config"
)

// FeedingFor resolves a bounded age-in-months value to its feeding bracket.
// Thresholds are scanned in descending order and the first threshold at or
// below the input wins; anything below every threshold falls through to the
// floor bracket (0 months). The resolver never fails.
func FeedingFor(ageMonths float64) FeedingBracket {
	for _, b := range feedingBrackets {
		if ageMonths >= float64(b.MinMonths) {
			return b
		}
	}
	return feedingBrackets[len(feedingBrackets)-1]
}

// ChecklistFor resolves a trimester label to its prenatal checklist, falling
// back to the "Unknown" checklist for absent or unrecognized labels.
func ChecklistFor(trimester string) []ChecklistItem {
	if items, ok := healthChecklists[trimester]; ok {
		return items
	}
	return healthChecklists[config.TrimesterUnknown]
}

// Milestones returns the feeding-development milestone list.
func Milestones() []Milestone {
	return feedingMilestones
}

// PumpingGuide returns the pumping schedule stages.
func PumpingGuide() []PumpingStage {
	return pumpingGuide
}

// Guidelines returns the general feeding-safety cards.
func Guidelines() []Guideline {
	return feedingGuidelines
}

// ImmunizationSchedule returns the dose offsets of the national
// immunization program.
func ImmunizationSchedule() []ImmunizationDose {
	return immunizationSchedule
}

// DueDate projects a dose onto the calendar relative to a date of birth.
// Week offsets are exact 7-day multiples; month offsets follow the calendar
// the way clinic appointments do.
func (d ImmunizationDose) DueDate(dob time.Time) time.Time {
	if d.OffsetMonths > 0 {
		return dob.AddDate(0, d.OffsetMonths, 0)
	}
	return dob.AddDate(0, 0, d.OffsetWeeks*config.DaysPerWeek)
}
