package services

import (
	"fmt"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

// GradeBand maps a score floor to a grade code and its qualifier.
type GradeBand struct {
	Min   float64 `json:"min"`
	Grade string  `json:"grade"`
	Label string  `json:"label"`
}

// GradingScale is an ordered set of bands, highest floor first. The
// last band is the catch-all failing tier. Scales are injected rather
// than hard-coded so a deployment can swap cutoffs without code
// changes.
type GradingScale []GradeBand

// DefaultGradingScale is the WAEC-style scale printed in the report
// card's key to grading.
var DefaultGradingScale = GradingScale{
	{Min: 75, Grade: "A1", Label: "Excellent"},
	{Min: 70, Grade: "B2", Label: "Very Good"},
	{Min: 65, Grade: "B3", Label: "Good"},
	{Min: 60, Grade: "C6", Label: "Credit"},
	{Min: 55, Grade: "D7", Label: "Pass"},
	{Min: 50, Grade: "E8", Label: "Fair"},
	{Min: 0, Grade: "F9", Label: "Fail"},
}

// Classify clamps the composite score into [0,100] and returns the
// matching band. Deterministic and side-effect free; the same function
// grades manual entries and report-time recomputation.
func (s GradingScale) Classify(score float64) GradeBand {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	for _, b := range s {
		if score >= b.Min {
			return b
		}
	}
	return s[len(s)-1]
}

// FailingGrade is the lowest tier's code, used by the promotion gate.
func (s GradingScale) FailingGrade() string {
	return s[len(s)-1].Grade
}

// Key renders the scale as the grading-key rows the report card prints.
func (s GradingScale) Key() []models.GradingKeyRow {
	rows := make([]models.GradingKeyRow, len(s))
	upper := 100.0
	for i, b := range s {
		var rng string
		if i == 0 {
			rng = fmt.Sprintf("%g%%-100%%", b.Min)
		} else {
			rng = fmt.Sprintf("%g%%-%.1f%%", b.Min, upper)
		}
		rows[i] = models.GradingKeyRow{Grade: b.Grade, Label: b.Label, Range: rng}
		upper = b.Min - 0.1
	}
	return rows
}
