package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
)

// ReportConfig carries the term ordering and grading scale the report
// aggregator works with.
type ReportConfig struct {
	Terms []string
	Scale GradingScale
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Terms: []string{"1st Term", "2nd Term", "3rd Term"},
		Scale: DefaultGradingScale,
	}
}

// DocumentRenderer turns an assembled report card into a paginated
// document. Implementations (PDF drawing) live outside this core; the
// ReportCard struct is their full input contract.
type DocumentRenderer interface {
	Render(card *models.ReportCard) ([]byte, error)
}

// BuildReportCard assembles every figure the report card shows for one
// student, term and session. With approvedOnly the entries are limited
// to admin-approved rows (the student-facing path); the PDF path passes
// false so pending scores still print. Everything is recomputed from
// the store on each call, so repeated calls over unchanged data yield
// identical output.
func BuildReportCard(db *sql.DB, cfg ReportConfig, studentID, term, session string, approvedOnly bool) (*models.ReportCard, error) {
	student, err := database.GetStudentByStudentID(db, studentID)
	if err != nil {
		return nil, err
	}

	filters := database.ResultFilters{StudentID: studentID, Term: term, Session: session}
	if approvedOnly {
		approved := true
		filters.Approved = &approved
	}
	entries, err := database.ListResults(db, filters)
	if err != nil {
		return nil, err
	}

	termIdx := indexOf(cfg.Terms, term)
	prevTotals := make([]map[string]float64, 0, 2)
	for i := 0; i < termIdx; i++ {
		rows, err := database.ListResults(db, database.ResultFilters{
			StudentID: studentID, Term: cfg.Terms[i], Session: session,
		})
		if err != nil {
			return nil, err
		}
		prevTotals = append(prevTotals, totalsBySubject(rows))
	}

	// Class statistics key off the student's current class field, not
	// the class stored on each result row. A promoted student's report
	// therefore compares against the new class; see DESIGN.md.
	classmates, err := database.GetStudents(db, student.Class)
	if err != nil {
		return nil, err
	}
	classRows, err := database.ListResults(db, database.ResultFilters{
		Class: student.Class, Term: term, Session: session,
	})
	if err != nil {
		return nil, err
	}

	perStudent := make(map[string][]*models.Result, len(classmates))
	for _, c := range classmates {
		rows, err := database.ListResults(db, database.ResultFilters{
			StudentID: c.StudentID, Term: term, Session: session,
		})
		if err != nil {
			return nil, err
		}
		perStudent[c.StudentID] = rows
	}

	card := assembleReportCard(cfg, *student, term, session, entries, prevTotals, classRows, perStudent)
	card.StudentsInClass = len(classmates)

	remark, err := database.GetTermRemark(db, studentID, student.Class, term, session)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if remark != nil {
		card.TeacherRemark = remark.Remark
	}
	return card, nil
}

// assembleReportCard is the pure computation over already-fetched rows.
func assembleReportCard(cfg ReportConfig, student models.Student, term, session string,
	entries []*models.Result, prevTotals []map[string]float64,
	classRows []*models.Result, perStudent map[string][]*models.Result) *models.ReportCard {

	grandTotal, termAverage := termSummary(entries)
	band := cfg.Scale.Classify(termAverage)
	classAvg, classHigh, classLow := classAverages(perStudent)
	stats := subjectStatistics(classRows)

	card := &models.ReportCard{
		Student:             student,
		Term:                term,
		Session:             session,
		Rows:                buildSubjectRows(cfg.Scale, entries, len(prevTotals), prevTotals, stats),
		GrandTotal:          grandTotal,
		TermAverage:         fmt.Sprintf("%.2f", termAverage),
		CumulativeGrade:     fmt.Sprintf("%s (%s)", band.Grade, band.Label),
		ClassAverage:        classAvg,
		HighestClassAverage: classHigh,
		LowestClassAverage:  classLow,
		GradingKey:          cfg.Scale.Key(),
	}
	return card
}

// termSummary returns the grand total and the term average (grand
// total over subject count, 0 when the student has no entries).
func termSummary(entries []*models.Result) (float64, float64) {
	var grand float64
	for _, e := range entries {
		grand += e.Total()
	}
	if len(entries) == 0 {
		return 0, 0
	}
	return grand, grand / float64(len(entries))
}

// totalsBySubject maps each subject to its composite total.
func totalsBySubject(entries []*models.Result) map[string]float64 {
	m := make(map[string]float64, len(entries))
	for _, e := range entries {
		m[e.Subject] = e.Total()
	}
	return m
}

type subjectStats struct {
	highest float64
	lowest  float64
	average float64
}

// subjectStatistics derives per-subject highest/lowest/average totals
// across every entry the class produced this term.
func subjectStatistics(classRows []*models.Result) map[string]subjectStats {
	totals := make(map[string][]float64)
	for _, r := range classRows {
		totals[r.Subject] = append(totals[r.Subject], r.Total())
	}
	stats := make(map[string]subjectStats, len(totals))
	for subject, ts := range totals {
		s := subjectStats{highest: ts[0], lowest: ts[0]}
		var sum float64
		for _, t := range ts {
			sum += t
			if t > s.highest {
				s.highest = t
			}
			if t < s.lowest {
				s.lowest = t
			}
		}
		s.average = sum / float64(len(ts))
		stats[subject] = s
	}
	return stats
}

// classAverages computes each classmate's own term average and folds
// them into class average, highest and lowest. Students with no entry
// this term are left out. Figures are formatted to two decimals with
// "0.00" when the class has no data yet.
func classAverages(perStudent map[string][]*models.Result) (avg, high, low string) {
	var sum float64
	var count int
	var averages []float64
	for _, rows := range perStudent {
		if len(rows) == 0 {
			continue
		}
		_, a := termSummary(rows)
		sum += a
		count++
		averages = append(averages, a)
	}
	if count == 0 {
		return "0.00", "0.00", "0.00"
	}
	highest, lowest := averages[0], averages[0]
	for _, a := range averages {
		if a > highest {
			highest = a
		}
		if a < lowest {
			lowest = a
		}
	}
	return fmt.Sprintf("%.2f", sum/float64(count)),
		fmt.Sprintf("%.2f", highest),
		fmt.Sprintf("%.2f", lowest)
}

// buildSubjectRows renders each entry with its carry-forward and class
// columns. termIdx is the zero-based position of the current term;
// prevTotals holds the completed prior terms in order.
func buildSubjectRows(scale GradingScale, entries []*models.Result, termIdx int,
	prevTotals []map[string]float64, stats map[string]subjectStats) []models.SubjectRow {

	rows := make([]models.SubjectRow, 0, len(entries))
	for _, e := range entries {
		total := e.Total()
		grade := e.Grade
		label := ""
		if grade == "" {
			band := scale.Classify(total)
			grade, label = band.Grade, band.Label
		} else {
			label = labelForGrade(scale, grade)
		}

		row := models.SubjectRow{
			Subject:    e.Subject,
			CA1:        e.CA1,
			CA2:        e.CA2,
			CA3:        e.CA3,
			Exam:       e.Exam,
			CATotal:    e.CATotal(),
			Total:      total,
			Grade:      grade,
			GradeLabel: label,
			Remark:     e.Remark,
		}

		cumulative := []float64{}
		if termIdx >= 1 && len(prevTotals) >= 1 {
			if t, ok := prevTotals[0][e.Subject]; ok {
				row.FirstTermTotal = &t
				cumulative = append(cumulative, t)
			}
		}
		if termIdx >= 2 && len(prevTotals) >= 2 {
			if t, ok := prevTotals[1][e.Subject]; ok {
				row.SecondTermTotal = &t
				cumulative = append(cumulative, t)
			}
		}
		// No cumulative figure on the first term.
		if termIdx >= 1 {
			cumulative = append(cumulative, total)
			var sum float64
			for _, t := range cumulative {
				sum += t
			}
			avg := math.Round(sum / float64(len(cumulative)))
			row.CumulativeAverage = &avg
		}

		if s, ok := stats[e.Subject]; ok {
			h, l, a := s.highest, s.lowest, s.average
			row.ClassHighest = &h
			row.ClassLowest = &l
			row.ClassAverage = &a
		}
		rows = append(rows, row)
	}
	return rows
}

func labelForGrade(scale GradingScale, grade string) string {
	for _, b := range scale {
		if b.Grade == grade {
			return b.Label
		}
	}
	return ""
}

func indexOf(terms []string, term string) int {
	for i, t := range terms {
		if t == term {
			return i
		}
	}
	return -1
}
