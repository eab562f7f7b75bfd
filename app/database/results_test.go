package database

import (
	"strings"
	"testing"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

func fptr(v float64) *float64 { return &v }

func storedResult() *models.Result {
	return &models.Result{
		ID:        7,
		StudentID: "JSS1-0001",
		Subject:   "English",
		CA1:       fptr(10),
		CA2:       fptr(8),
		Exam:      fptr(50),
		Grade:     "B2",
		Remark:    "Keep it up",
		Approved:  true,
	}
}

func TestMergeResultReplacesSentFields(t *testing.T) {
	existing := storedResult()
	patch := models.ResultPatch{
		CA1:   models.Score(12),
		Exam:  models.Score(60),
		Grade: models.Text("A1"),
	}
	merged := MergeResult(existing, patch)

	if merged.CA1 == nil || *merged.CA1 != 12 {
		t.Errorf("CA1 = %v, want 12", merged.CA1)
	}
	if merged.Exam == nil || *merged.Exam != 60 {
		t.Errorf("Exam = %v, want 60", merged.Exam)
	}
	if merged.Grade != "A1" {
		t.Errorf("Grade = %s, want A1", merged.Grade)
	}
	// Untouched fields keep their stored values.
	if merged.CA2 == nil || *merged.CA2 != 8 {
		t.Errorf("CA2 = %v, want stored 8", merged.CA2)
	}
	if merged.Remark != "Keep it up" {
		t.Errorf("Remark = %s, want stored remark", merged.Remark)
	}
}

func TestMergeResultNullAndAbsentKeepStored(t *testing.T) {
	existing := storedResult()
	patch := models.ResultPatch{
		CA1:    models.NullScore(), // explicit null
		Remark: models.Text("   "), // blank
	}
	merged := MergeResult(existing, patch)

	if merged.CA1 == nil || *merged.CA1 != 10 {
		t.Errorf("explicit null replaced CA1: %v", merged.CA1)
	}
	if merged.CA2 == nil || *merged.CA2 != 8 {
		t.Errorf("absent field replaced CA2: %v", merged.CA2)
	}
	if merged.Remark != "Keep it up" {
		t.Errorf("blank remark replaced stored remark: %s", merged.Remark)
	}
}

func TestMergeResultResetsApproval(t *testing.T) {
	existing := storedResult()
	merged := MergeResult(existing, models.ResultPatch{CA1: models.Score(1)})
	if merged.Approved {
		t.Error("merged row must drop back to unapproved")
	}
	if !existing.Approved {
		t.Error("merge must not mutate the existing row")
	}
}

func TestMergeResultKeepsIdentity(t *testing.T) {
	existing := storedResult()
	merged := MergeResult(existing, models.ResultPatch{Exam: models.Score(44)})
	if merged.ID != existing.ID || merged.StudentID != existing.StudentID || merged.Subject != existing.Subject {
		t.Error("merge must not change row identity")
	}
}

func TestWhereClauseEmpty(t *testing.T) {
	where, args := ResultFilters{}.whereClause()
	if where != "" || args != nil {
		t.Errorf("empty filters = (%q, %v), want no clause", where, args)
	}
}

func TestWhereClauseSingle(t *testing.T) {
	where, args := ResultFilters{StudentID: "JSS1-0001"}.whereClause()
	if where != " WHERE student_id = $1" {
		t.Errorf("clause = %q", where)
	}
	if len(args) != 1 || args[0] != "JSS1-0001" {
		t.Errorf("args = %v", args)
	}
}

func TestWhereClauseCombined(t *testing.T) {
	approved := true
	where, args := ResultFilters{
		StudentID: "JSS1-0001",
		Term:      "1st Term",
		Session:   "2024/25",
		Approved:  &approved,
	}.whereClause()

	if len(args) != 4 {
		t.Fatalf("got %d args, want 4", len(args))
	}
	for i, want := range []string{"student_id = $1", "term = $2", "session = $3", "approved = $4"} {
		if !strings.Contains(where, want) {
			t.Errorf("clause missing %q (arg %d): %q", want, i+1, where)
		}
	}
	if strings.Count(where, "AND") != 3 {
		t.Errorf("clause should join with 3 ANDs: %q", where)
	}
	if args[3] != true {
		t.Errorf("approved arg = %v, want true", args[3])
	}
}

func TestWhereClauseApprovedFalse(t *testing.T) {
	approved := false
	where, args := ResultFilters{Approved: &approved}.whereClause()
	if where != " WHERE approved = $1" {
		t.Errorf("clause = %q", where)
	}
	if args[0] != false {
		t.Errorf("args = %v, want [false]", args)
	}
}

func TestScoreArg(t *testing.T) {
	if got := scoreArg(models.Score(12), false); got != 12.0 {
		t.Errorf("valid score = %v, want 12", got)
	}
	if got := scoreArg(models.NullScore(), false); got != nil {
		t.Errorf("null without default = %v, want nil", got)
	}
	if got := scoreArg(models.NullScore(), true); got != 0.0 {
		t.Errorf("null with default zero = %v, want 0", got)
	}
	if got := scoreArg(models.ScoreField{}, true); got != 0.0 {
		t.Errorf("absent with default zero = %v, want 0", got)
	}
}
