package services

import (
	"testing"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

func entry(subject string, ca1, ca2, ca3, exam float64) *models.Result {
	return &models.Result{
		Subject: subject,
		CA1:     fptr(ca1), CA2: fptr(ca2), CA3: fptr(ca3), Exam: fptr(exam),
	}
}

func TestTermSummary(t *testing.T) {
	entries := []*models.Result{
		entry("English", 10, 10, 10, 50),   // 80
		entry("Mathematics", 5, 5, 10, 40), // 60
	}
	grand, avg := termSummary(entries)
	if grand != 140 {
		t.Errorf("grand total = %v, want 140", grand)
	}
	if avg != 70 {
		t.Errorf("term average = %v, want 70", avg)
	}
}

func TestTermSummaryEmpty(t *testing.T) {
	grand, avg := termSummary(nil)
	if grand != 0 || avg != 0 {
		t.Errorf("empty summary = (%v, %v), want (0, 0)", grand, avg)
	}
}

func TestClassAverages(t *testing.T) {
	perStudent := map[string][]*models.Result{
		"STU-1": {entry("English", 10, 10, 10, 50)}, // avg 80
		"STU-2": {entry("English", 5, 5, 5, 45)},    // avg 60
		"STU-3": {},                                 // no entries, excluded
	}
	avg, high, low := classAverages(perStudent)
	if avg != "70.00" {
		t.Errorf("class average = %s, want 70.00", avg)
	}
	if high != "80.00" {
		t.Errorf("class highest = %s, want 80.00", high)
	}
	if low != "60.00" {
		t.Errorf("class lowest = %s, want 60.00", low)
	}
}

func TestClassAveragesEmptyClass(t *testing.T) {
	avg, high, low := classAverages(map[string][]*models.Result{})
	if avg != "0.00" || high != "0.00" || low != "0.00" {
		t.Errorf("empty class = (%s, %s, %s), want all 0.00", avg, high, low)
	}
}

func TestSubjectStatistics(t *testing.T) {
	classRows := []*models.Result{
		entry("English", 10, 10, 10, 50), // 80
		entry("English", 5, 5, 5, 45),    // 60
		entry("English, Lit", 0, 0, 0, 40),
	}
	stats := subjectStatistics(classRows)
	s, ok := stats["English"]
	if !ok {
		t.Fatal("missing English statistics")
	}
	if s.highest != 80 || s.lowest != 60 || s.average != 70 {
		t.Errorf("English stats = %+v, want {80 60 70}", s)
	}
	if len(stats) != 2 {
		t.Errorf("got %d subjects, want 2", len(stats))
	}
}

func TestBuildSubjectRowsFirstTerm(t *testing.T) {
	entries := []*models.Result{entry("English", 10, 10, 10, 50)}
	rows := buildSubjectRows(DefaultGradingScale, entries, 0, nil, nil)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.CATotal != 30 || r.Total != 80 {
		t.Errorf("totals = (%v, %v), want (30, 80)", r.CATotal, r.Total)
	}
	if r.Grade != "A1" || r.GradeLabel != "Excellent" {
		t.Errorf("grade = %s (%s), want A1 (Excellent)", r.Grade, r.GradeLabel)
	}
	if r.CumulativeAverage != nil {
		t.Error("first term must not carry a cumulative average")
	}
	if r.FirstTermTotal != nil || r.SecondTermTotal != nil {
		t.Error("first term must not carry prior-term columns")
	}
}

func TestBuildSubjectRowsCumulative(t *testing.T) {
	entries := []*models.Result{entry("English", 10, 10, 10, 50)} // 80
	prev := []map[string]float64{
		{"English": 60},
		{"English": 70},
	}
	rows := buildSubjectRows(DefaultGradingScale, entries, 2, prev, nil)
	r := rows[0]
	if r.FirstTermTotal == nil || *r.FirstTermTotal != 60 {
		t.Errorf("first term total = %v, want 60", r.FirstTermTotal)
	}
	if r.SecondTermTotal == nil || *r.SecondTermTotal != 70 {
		t.Errorf("second term total = %v, want 70", r.SecondTermTotal)
	}
	// (60 + 70 + 80) / 3 = 70, rounded.
	if r.CumulativeAverage == nil || *r.CumulativeAverage != 70 {
		t.Errorf("cumulative average = %v, want 70", r.CumulativeAverage)
	}
}

func TestBuildSubjectRowsSkipsMissingPriorSubject(t *testing.T) {
	entries := []*models.Result{entry("Biology", 10, 10, 10, 40)} // 70
	prev := []map[string]float64{{"English": 60}}
	rows := buildSubjectRows(DefaultGradingScale, entries, 1, prev, nil)
	r := rows[0]
	if r.FirstTermTotal != nil {
		t.Error("subject absent last term must not carry a first term total")
	}
	// Cumulative over the current term alone.
	if r.CumulativeAverage == nil || *r.CumulativeAverage != 70 {
		t.Errorf("cumulative average = %v, want 70", r.CumulativeAverage)
	}
}

func TestBuildSubjectRowsKeepsStoredGrade(t *testing.T) {
	e := entry("English", 0, 0, 0, 20) // would classify F9
	e.Grade = "B3"
	rows := buildSubjectRows(DefaultGradingScale, []*models.Result{e}, 0, nil, nil)
	if rows[0].Grade != "B3" {
		t.Errorf("grade = %s, want stored B3", rows[0].Grade)
	}
	if rows[0].GradeLabel != "Good" {
		t.Errorf("label = %s, want Good", rows[0].GradeLabel)
	}
}

func TestAssembleReportCard(t *testing.T) {
	cfg := DefaultReportConfig()
	student := models.Student{StudentID: "JSS1-0001", FullName: "Ada Obi", Class: "JSS1"}
	entries := []*models.Result{
		entry("English", 10, 10, 10, 50),   // 80
		entry("Mathematics", 5, 5, 10, 40), // 60
	}
	perStudent := map[string][]*models.Result{
		"JSS1-0001": entries,
		"JSS1-0002": {entry("English", 5, 5, 5, 45)}, // avg 60
	}
	card := assembleReportCard(cfg, student, "1st Term", "2024/25", entries, nil, entries, perStudent)

	if card.GrandTotal != 140 {
		t.Errorf("grand total = %v, want 140", card.GrandTotal)
	}
	if card.TermAverage != "70.00" {
		t.Errorf("term average = %s, want 70.00", card.TermAverage)
	}
	if card.CumulativeGrade != "B2 (Very Good)" {
		t.Errorf("cumulative grade = %s, want B2 (Very Good)", card.CumulativeGrade)
	}
	if card.ClassAverage != "65.00" {
		t.Errorf("class average = %s, want 65.00", card.ClassAverage)
	}
	if card.HighestClassAverage != "70.00" || card.LowestClassAverage != "60.00" {
		t.Errorf("class high/low = %s/%s, want 70.00/60.00", card.HighestClassAverage, card.LowestClassAverage)
	}
	if len(card.GradingKey) != len(DefaultGradingScale) {
		t.Errorf("grading key has %d rows, want %d", len(card.GradingKey), len(DefaultGradingScale))
	}
	if len(card.Rows) != 2 {
		t.Errorf("got %d subject rows, want 2", len(card.Rows))
	}
}
