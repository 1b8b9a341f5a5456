// Package schedule holds the static guidance tables and the bracket
// resolution logic that maps a classified age or trimester onto them.
//
// The tables are build-time data. Adding or removing a bracket is a data
// change only; the resolver never needs to know how many brackets exist,
// only that they stay sorted.
package schedule

import "github.com/tunza-app/tunza/internal/config"

// FeedingPlan describes one feeding modality within an age bracket.
type FeedingPlan struct {
	Type      string   `json:"type"`
	Frequency string   `json:"frequency"`
	Amount    string   `json:"amount"`
	Notes     []string `json:"notes"`
}

// FeedingBracket is one threshold-keyed entry of the feeding table.
// MinMonths is the inclusive lower bound; the upper bound is implied by the
// next bracket up.
type FeedingBracket struct {
	MinMonths int           `json:"min_months"`
	Title     string        `json:"title"`
	Plans     []FeedingPlan `json:"plans"`
}

// Milestone is a feeding-development milestone with its age range.
type Milestone struct {
	AgeRange  string `json:"age_range"`
	Milestone string `json:"milestone"`
}

// PumpingStage is one row of the pumping schedule guide.
type PumpingStage struct {
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	Amount    string `json:"amount"`
	Tips      string `json:"tips"`
}

// Guideline is a general feeding-safety card.
type Guideline struct {
	Title   string `json:"title"`
	Icon    string `json:"icon"`
	Content string `json:"content"`
}

// ChecklistItem is one prenatal task within a trimester checklist.
type ChecklistItem struct {
	Week string `json:"week"`
	Task string `json:"task"`
	Icon string `json:"icon"`
}

// ImmunizationDose is one dose of the national immunization schedule,
// expressed as an offset from the date of birth. Exactly one of the offset
// fields is meaningful; months take precedence when both are set.
type ImmunizationDose struct {
	Vaccine     string `json:"vaccine"`
	Dose        int    `json:"dose"`
	TotalDoses  int    `json:"total_doses"`
	OffsetWeeks int    `json:"offset_weeks"`
	// OffsetMonths uses calendar months, matching how clinics schedule the
	// later visits.
	OffsetMonths int `json:"offset_months"`
}

// feedingBrackets is ordered by MinMonths DESCENDING. The resolver scans
// top-down and returns the first bracket whose threshold is at or below the
// input. Keep the order when editing.
var feedingBrackets = []FeedingBracket{
	{
		MinMonths: 9,
		Title:     "9+ Months",
		Plans: []FeedingPlan{
			{
				Type:      "Breastfeeding",
				Frequency: "3-4 times per day",
				Amount:    "Until satisfied",
				Notes:     []string{"Continue through first year", "Feed and solid food pattern forming"},
			},
			{
				Type:      "Formula Feeding",
				Frequency: "2-3 times per day",
				Amount:    "7-9 oz per feeding",
				Notes:     []string{"Continue with meals and snacks", "Can offer from cup more often"},
			},
			{
				Type:      "Three Meals + Snacks",
				Frequency: "3 meals + 1-2 snacks",
				Amount:    "3-4 tablespoons per meal",
				Notes:     []string{"Soft mashed or chopped foods", "Finger foods baby can self-feed", "Remove choking hazards"},
			},
		},
	},
	{
		MinMonths: 6,
		Title:     "6+ Months",
		Plans: []FeedingPlan{
			{
				Type:      "Breastfeeding",
				Frequency: "4-6 times per day",
				Amount:    "Until satisfied",
				Notes:     []string{"Continue alongside solids", "Still primary nutrition source", "Can introduce from cup"},
			},
			{
				Type:      "Formula Feeding",
				Frequency: "3-4 times per day",
				Amount:    "6-8 oz per feeding",
				Notes:     []string{"Total ~24-32 oz daily", "Combined with solid foods", "Transition to sippy cup"},
			},
			{
				Type:      "Starting Solids",
				Frequency: "1-2 times daily to start",
				Amount:    "1-2 tablespoons, increase gradually",
				Notes:     []string{"Iron-fortified cereal first", "Single ingredient foods", "Introduce new foods every 3-5 days", "Watch for allergic reactions"},
			},
			{
				Type:      "Finger Foods",
				Frequency: "Alongside milk feeds",
				Amount:    "Small, soft pieces",
				Notes:     []string{"Soft fruits and vegetables", "Well-cooked grains", "Age-appropriate textures only"},
			},
		},
	},
	{
		MinMonths: 3,
		Title:     "3-5 Months",
		Plans: []FeedingPlan{
			{
				Type:      "Breastfeeding",
				Frequency: "6-8 times per day",
				Amount:    "Until satisfied",
				Notes:     []string{"More efficient nursing", "Feeds may be shorter", "May go longer between feeds"},
			},
			{
				Type:      "Formula Feeding",
				Frequency: "Every 4 hours",
				Amount:    "4-6 oz per feeding",
				Notes:     []string{"More structured schedule", "Total ~24-32 oz daily", "Baby showing more control"},
			},
			{
				Type:      "Night Feeds",
				Frequency: "May drop to 1-2 times",
				Amount:    "Smaller feeds as needed",
				Notes:     []string{"Some babies may sleep through night", "Continue feeding if baby wakes hungry", "Do not force night feeds"},
			},
		},
	},
	{
		MinMonths: 1,
		Title:     "1-3 Months",
		Plans: []FeedingPlan{
			{
				Type:      "Breastfeeding",
				Frequency: "7-9 times per day",
				Amount:    "Until satisfied",
				Notes:     []string{"Nursing typically 10-15 minutes", "More predictable patterns emerging", "Milk supply is established"},
			},
			{
				Type:      "Formula Feeding",
				Frequency: "Every 3-4 hours",
				Amount:    "3-5 oz per feeding",
				Notes:     []string{"Regular feeding schedule", "Total ~20-30 oz daily", "Watch for satiety cues"},
			},
		},
	},
	{
		MinMonths: 0,
		Title:     "0-1 Months",
		Plans: []FeedingPlan{
			{
				Type:      "Breastfeeding",
				Frequency: "8-12 times per day",
				Amount:    "Until satisfied (usually 10-20 minutes per side)",
				Notes:     []string{"Cluster feeding common", "Feed on demand", "Look for 6-8 wet diapers daily"},
			},
			{
				Type:      "Formula Feeding",
				Frequency: "Every 2-3 hours",
				Amount:    "2-3 oz per feeding",
				Notes:     []string{"Feed on demand", "Burp frequently", "Gradually increase amounts"},
			},
		},
	},
}

// feedingMilestones lists feeding-development milestones in age order.
var feedingMilestones = []Milestone{
	{AgeRange: "0-1 months", Milestone: "Rooting and sucking reflexes working perfectly"},
	{AgeRange: "1-3 months", Milestone: "Feeding pattern becomes more predictable"},
	{AgeRange: "3-5 months", Milestone: "Baby may start showing interest in watching you eat"},
	{AgeRange: "5-6 months", Milestone: "Ready for first solids when can sit with support and show interest"},
	{AgeRange: "6-8 months", Milestone: "Progressing to more textured foods and self-feeding exploration"},
	{AgeRange: "8-10 months", Milestone: "Pincer grasp developing - can pick up finger foods"},
	{AgeRange: "10-12 months", Milestone: "Eating more table foods with family meals"},
}

// pumpingGuide lists the pumping schedule stages in age order.
var pumpingGuide = []PumpingStage{
	{Title: "Starting Out", Frequency: "Every 2-3 hours", Amount: "½ - 2 oz per session", Tips: "Ensure proper flange fit, relax and warm breast"},
	{Title: "1-3 Months", Frequency: "Every 3-4 hours", Amount: "2-4 oz per session", Tips: "Session takes 15-20 minutes, store properly"},
	{Title: "3-6 Months", Frequency: "Every 4-6 hours", Amount: "4-6 oz per session", Tips: "Can combine milk from multiple sessions"},
	{Title: "6+ Months", Frequency: "Every 4-8 hours or as needed", Amount: "6-10 oz per session", Tips: "Power pumping can increase supply if needed"},
}

// feedingGuidelines are the general safety cards shown with any bracket.
var feedingGuidelines = []Guideline{
	{Title: "Exclusive Feeding Recommendation", Icon: "ℹ️", Content: "Exclusive breastfeeding or iron-fortified formula recommended for the first 6 months."},
	{Title: "Introducing Solids", Icon: "🍽️", Content: "Start solids around 6 months when baby can sit with support and shows interest. Begin with single-ingredient purees."},
	{Title: "Vitamin D Supplement", Icon: "💊", Content: "Babies who are breastfed should receive 400 IU Vitamin D daily; formula-fed babies may need supplementation."},
	{Title: "Allergy Watch", Icon: "⚠️", Content: "Introduce common potential allergens (peanut, egg) around 6 months per pediatric guidance; watch for reactions."},
	{Title: "Bottle & Paced Feeding Safety", Icon: "🍼", Content: "Hold the baby upright and pace bottles to encourage self-regulation. Avoid propping bottles or feeding lying flat."},
	{Title: "Burping & Reflux", Icon: "🫧", Content: "Burp mid-feed and after; if frequent spitting up or discomfort occurs, discuss with your pediatrician."},
	{Title: "Safe Milk Storage", Icon: "🧊", Content: "Store expressed milk in clean, labeled containers. Use within 4 hours at room temp, 4 days refrigerated."},
	{Title: "Clean Feeding Equipment", Icon: "🧼", Content: "Wash and sterilize bottles and nipples regularly. Inspect for wear and replace cracked parts."},
	{Title: "Feeding When Unwell", Icon: "🤒", Content: "Offer small, frequent feeds if baby is sick and contact your pediatrician if feeding drops significantly."},
	{Title: "When to Contact Provider", Icon: "📞", Content: "Call your provider for poor weight gain, very few wet diapers, persistent vomiting, or high fever."},
}

// healthChecklists maps a trimester label to its prenatal checklist.
var healthChecklists = map[string][]ChecklistItem{
	config.TrimesterOne: {
		{Week: "8-12 weeks", Task: "First prenatal visit with healthcare provider", Icon: "👨‍⚕️"},
		{Week: "8-10 weeks", Task: "Ultrasound to confirm pregnancy", Icon: "📸"},
		{Week: "9-13 weeks", Task: "Nuchal translucency screening (optional)", Icon: "📊"},
		{Week: "Throughout", Task: "Take prenatal vitamins with folic acid", Icon: "💊"},
	},
	config.TrimesterTwo: {
		{Week: "15-20 weeks", Task: "Quad screen or cell-free DNA test (optional)", Icon: "🧪"},
		{Week: "18-22 weeks", Task: "Anatomy ultrasound - detailed fetal exam", Icon: "📸"},
		{Week: "24-28 weeks", Task: "Glucose screening test", Icon: "🧬"},
		{Week: "28 weeks", Task: "RhoGAM injection (if Rh negative)", Icon: "💉"},
	},
	config.TrimesterThree: {
		{Week: "36 weeks", Task: "Group B Streptococcus (GBS) test", Icon: "🧪"},
		{Week: "36+ weeks", Task: "Weekly prenatal visits", Icon: "👨‍⚕️"},
		{Week: "Weekly", Task: "Monitor baby movements (kick counts)", Icon: "👶"},
		{Week: "37-40 weeks", Task: "Cervical exams to check progress", Icon: "📋"},
	},
	config.TrimesterUnknown: {
		{Week: "Contact healthcare provider", Task: "Schedule your first prenatal appointment", Icon: "📞"},
	},
}

// immunizationSchedule is the national immunization program projected as
// dose offsets from birth. Used to generate calendar feed events.
var immunizationSchedule = []ImmunizationDose{
	{Vaccine: "BCG", Dose: 1, TotalDoses: 1, OffsetWeeks: 0},
	{Vaccine: "Pentavalent Vaccine", Dose: 1, TotalDoses: 3, OffsetWeeks: 6},
	{Vaccine: "Pentavalent Vaccine", Dose: 2, TotalDoses: 3, OffsetWeeks: 10},
	{Vaccine: "Pentavalent Vaccine", Dose: 3, TotalDoses: 3, OffsetWeeks: 14},
	{Vaccine: "OPV", Dose: 1, TotalDoses: 3, OffsetWeeks: 6},
	{Vaccine: "OPV", Dose: 2, TotalDoses: 3, OffsetWeeks: 10},
	{Vaccine: "OPV", Dose: 3, TotalDoses: 3, OffsetWeeks: 14},
	{Vaccine: "PCV", Dose: 1, TotalDoses: 3, OffsetWeeks: 6},
	{Vaccine: "PCV", Dose: 2, TotalDoses: 3, OffsetWeeks: 10},
	{Vaccine: "PCV", Dose: 3, TotalDoses: 3, OffsetMonths: 9},
	{Vaccine: "Rotavirus Vaccine", Dose: 1, TotalDoses: 2, OffsetWeeks: 6},
	{Vaccine: "Rotavirus Vaccine", Dose: 2, TotalDoses: 2, OffsetWeeks: 10},
	{Vaccine: "fIPV", Dose: 1, TotalDoses: 2, OffsetWeeks: 6},
	{Vaccine: "fIPV", Dose: 2, TotalDoses: 2, OffsetWeeks: 14},
	{Vaccine: "MR", Dose: 1, TotalDoses: 2, OffsetMonths: 9},
	{Vaccine: "MR", Dose: 2, TotalDoses: 2, OffsetMonths: 15},
	{Vaccine: "JE", Dose: 1, TotalDoses: 1, OffsetMonths: 12},
}
