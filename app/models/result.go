package models

import "time"

// Result is one subject's score record for one student in a term.
// Score fields are nullable so "not entered" stays distinct from
// "entered as zero".
type Result struct {
	ID        int       `json:"id"`
	StudentID string    `json:"student_id"`
	Subject   string    `json:"subject"`
	CA1       *float64  `json:"ca1"`
	CA2       *float64  `json:"ca2"`
	CA3       *float64  `json:"ca3"`
	Exam      *float64  `json:"score"`
	Grade     string    `json:"grade"`
	Remark    string    `json:"remark"`
	Term      string    `json:"term"`
	Session   string    `json:"session"`
	Class     string    `json:"class"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CATotal sums the continuous-assessment components, missing ones as 0.
func (r *Result) CATotal() float64 {
	return deref(r.CA1) + deref(r.CA2) + deref(r.CA3)
}

// Total is the composite mark: CA components plus exam, missing as 0.
func (r *Result) Total() float64 {
	return r.CATotal() + deref(r.Exam)
}

// ExamScore is the raw exam component alone, missing as 0.
func (r *Result) ExamScore() float64 {
	return deref(r.Exam)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ResultKey identifies one result row. A second write to the same key
// merges into the existing row instead of duplicating it.
type ResultKey struct {
	StudentID string `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Term      string `json:"term" validate:"required"`
	Session   string `json:"session" validate:"required"`
	Class     string `json:"class" validate:"required"`
}

// MissingFields lists the key parts left blank, in declaration order.
func (k ResultKey) MissingFields() []string {
	var missing []string
	for _, p := range []struct{ name, value string }{
		{"student_id", k.StudentID},
		{"subject", k.Subject},
		{"term", k.Term},
		{"session", k.Session},
		{"class", k.Class},
	} {
		if p.value == "" {
			missing = append(missing, p.name)
		}
	}
	return missing
}

// Validate returns a ValidationError if any key part is blank.
func (k ResultKey) Validate() error {
	if missing := k.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ResultPatch carries the writable fields of a result. Each field
// distinguishes "not sent" from "sent as null" from "sent with a value"
// so partial updates only touch what the caller supplied.
type ResultPatch struct {
	CA1    ScoreField `json:"ca1"`
	CA2    ScoreField `json:"ca2"`
	CA3    ScoreField `json:"ca3"`
	Exam   ScoreField `json:"score"`
	Grade  TextField  `json:"grade"`
	Remark TextField  `json:"remark"`
}
