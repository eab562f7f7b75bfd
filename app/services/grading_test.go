package services

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		grade string
		label string
	}{
		{100, "A1", "Excellent"},
		{75, "A1", "Excellent"},
		{74.9, "B2", "Very Good"},
		{70, "B2", "Very Good"},
		{65, "B3", "Good"},
		{60, "C6", "Credit"},
		{55, "D7", "Pass"},
		{50, "E8", "Fair"},
		{49.9, "F9", "Fail"},
		{0, "F9", "Fail"},
	}
	for _, tt := range tests {
		band := DefaultGradingScale.Classify(tt.score)
		if band.Grade != tt.grade {
			t.Errorf("Classify(%v) grade = %s, want %s", tt.score, band.Grade, tt.grade)
		}
		if band.Label != tt.label {
			t.Errorf("Classify(%v) label = %s, want %s", tt.score, band.Label, tt.label)
		}
	}
}

func TestClassifyClampsOutOfRange(t *testing.T) {
	if got := DefaultGradingScale.Classify(-10).Grade; got != "F9" {
		t.Errorf("Classify(-10) = %s, want F9", got)
	}
	if got := DefaultGradingScale.Classify(250).Grade; got != "A1" {
		t.Errorf("Classify(250) = %s, want A1", got)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	// A higher score must never land in a lower band.
	prev := -1
	for score := 0.0; score <= 100; score += 0.5 {
		idx := bandIndex(DefaultGradingScale, DefaultGradingScale.Classify(score).Grade)
		if prev != -1 && idx > prev {
			t.Fatalf("band worsened from index %d to %d at score %v", prev, idx, score)
		}
		prev = idx
	}
}

func bandIndex(s GradingScale, grade string) int {
	for i, b := range s {
		if b.Grade == grade {
			return i
		}
	}
	return -1
}

func TestFailingGrade(t *testing.T) {
	if got := DefaultGradingScale.FailingGrade(); got != "F9" {
		t.Errorf("FailingGrade() = %s, want F9", got)
	}
}

func TestGradingKey(t *testing.T) {
	rows := DefaultGradingScale.Key()
	if len(rows) != len(DefaultGradingScale) {
		t.Fatalf("Key() returned %d rows, want %d", len(rows), len(DefaultGradingScale))
	}
	if rows[0].Range != "75%-100%" {
		t.Errorf("top range = %s, want 75%%-100%%", rows[0].Range)
	}
	if rows[1].Range != "70%-74.9%" {
		t.Errorf("second range = %s, want 70%%-74.9%%", rows[1].Range)
	}
	if rows[len(rows)-1].Range != "0%-49.9%" {
		t.Errorf("bottom range = %s, want 0%%-49.9%%", rows[len(rows)-1].Range)
	}
}
