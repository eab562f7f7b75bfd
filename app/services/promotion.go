package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
)

// PromotionConfig is the fixed academic structure the evaluator walks:
// the term sequence, the subjects that must be passed every term, the
// class ladder and the raw exam pass mark.
type PromotionConfig struct {
	Terms        []string
	GateSubjects []string
	ClassOrder   []string
	PassMark     float64
	Scale        GradingScale
}

// DefaultPromotionConfig mirrors the school's current structure: three
// terms, English and Mathematics as gate subjects, the JSS1..SS3
// ladder and a pass mark of 50.
func DefaultPromotionConfig() PromotionConfig {
	return PromotionConfig{
		Terms:        []string{"1st Term", "2nd Term", "3rd Term"},
		GateSubjects: []string{"English", "Mathematics"},
		ClassOrder:   []string{"JSS1", "JSS2", "JSS3", "SS1", "SS2", "SS3"},
		PassMark:     50,
		Scale:        DefaultGradingScale,
	}
}

// PromotionOutcome is a business decision, not an error: a student who
// fails a gate gets a refusal with a reason, while a broken query gets
// an error from PromoteStudent.
type PromotionOutcome struct {
	Promoted bool   `json:"promoted"`
	NewClass string `json:"newClass,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// PromoteStudent checks the session's approved results against the
// promotion gates and, on success, moves the student one step up the
// class ladder. The class change is persisted immediately; no history
// row is kept.
func PromoteStudent(db *sql.DB, cfg PromotionConfig, studentID, session string) (*PromotionOutcome, error) {
	approved := true
	byTerm := make(map[string][]*models.Result, len(cfg.Terms))
	for _, term := range cfg.Terms {
		rows, err := database.ListResults(db, database.ResultFilters{
			StudentID: studentID,
			Term:      term,
			Session:   session,
			Approved:  &approved,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s results: %w", term, err)
		}
		if len(rows) == 0 {
			return &PromotionOutcome{
				Reason: fmt.Sprintf("Student has not completed all %d terms with approved results.", len(cfg.Terms)),
			}, nil
		}
		byTerm[term] = rows
	}

	if outcome := cfg.checkGates(byTerm); outcome != nil {
		return outcome, nil
	}

	student, err := database.GetStudentByStudentID(db, studentID)
	if err != nil {
		return nil, err
	}
	next, ok := cfg.NextClass(student.Class)
	if !ok {
		return &PromotionOutcome{Reason: "Student is in the last class or class is unrecognized."}, nil
	}
	if err := database.UpdateStudentClass(db, studentID, next); err != nil {
		return nil, err
	}
	return &PromotionOutcome{Promoted: true, NewClass: next}, nil
}

// checkGates requires, for every term, an approved entry in every gate
// subject that is not the failing tier and whose raw exam score meets
// the pass mark. The check reads the exam component, not the composite
// total. Returns nil when all gates pass.
func (cfg PromotionConfig) checkGates(byTerm map[string][]*models.Result) *PromotionOutcome {
	fail := &PromotionOutcome{
		Reason: fmt.Sprintf("Student did not pass %s in all terms.", strings.Join(cfg.GateSubjects, " and/or ")),
	}
	for _, term := range cfg.Terms {
		for _, subject := range cfg.GateSubjects {
			entry := findSubject(byTerm[term], subject)
			if entry == nil {
				return fail
			}
			if entry.Grade == cfg.Scale.FailingGrade() || entry.ExamScore() < cfg.PassMark {
				return fail
			}
		}
	}
	return nil
}

// NextClass returns the ladder entry after the current class. ok is
// false when the class is unrecognized or already terminal.
func (cfg PromotionConfig) NextClass(current string) (string, bool) {
	for i, name := range cfg.ClassOrder {
		if name == current {
			if i == len(cfg.ClassOrder)-1 {
				return "", false
			}
			return cfg.ClassOrder[i+1], true
		}
	}
	return "", false
}

// findSubject locates an entry by exact subject name.
func findSubject(entries []*models.Result, subject string) *models.Result {
	for _, e := range entries {
		if e.Subject == subject {
			return e
		}
	}
	return nil
}
