package models

// SubjectRow is one line of the report-card table: the student's own
// scores plus the carry-forward and class columns printed beside them.
type SubjectRow struct {
	Subject    string   `json:"subject"`
	CA1        *float64 `json:"ca1"`
	CA2        *float64 `json:"ca2"`
	CA3        *float64 `json:"ca3"`
	Exam       *float64 `json:"score"`
	CATotal    float64  `json:"ca_total"`
	Total      float64  `json:"total"`
	Grade      string   `json:"grade"`
	GradeLabel string   `json:"grade_label"`
	Remark     string   `json:"remark"`

	// Previous-term summaries for the same subject and session. Only
	// the terms already completed are present.
	FirstTermTotal  *float64 `json:"first_term_total,omitempty"`
	SecondTermTotal *float64 `json:"second_term_total,omitempty"`
	// CumulativeAverage is the mean of this subject's totals across the
	// completed terms up to and including the current one. Absent on
	// the first term.
	CumulativeAverage *float64 `json:"cumulative_average,omitempty"`

	// Class-wide totals for this subject in the current term.
	ClassHighest *float64 `json:"class_highest,omitempty"`
	ClassLowest  *float64 `json:"class_lowest,omitempty"`
	ClassAverage *float64 `json:"class_average,omitempty"`
}

// GradingKeyRow is one line of the "key to grading" table.
type GradingKeyRow struct {
	Grade string `json:"grade"`
	Label string `json:"label"`
	Range string `json:"range"`
}

// ReportCard is the full input contract of the document renderer: every
// figure the PDF prints, already computed. It is rebuilt from the store
// on every request so it always reflects the entries as of generation
// time.
type ReportCard struct {
	Student         Student `json:"student"`
	Term            string  `json:"term"`
	Session         string  `json:"session"`
	StudentsInClass int     `json:"students_in_class"`

	Rows []SubjectRow `json:"rows"`

	GrandTotal      float64 `json:"grand_total"`
	TermAverage     string  `json:"term_average"`
	CumulativeGrade string  `json:"cumulative_grade"`

	ClassAverage        string `json:"class_average"`
	HighestClassAverage string `json:"highest_class_average"`
	LowestClassAverage  string `json:"lowest_class_average"`

	TeacherRemark string          `json:"teacher_remark,omitempty"`
	GradingKey    []GradingKeyRow `json:"grading_key"`
}
