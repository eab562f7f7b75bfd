package models

// Class is a registry entry. The promotion ladder is configuration, not
// derived from this table; the registry only feeds form dropdowns.
type Class struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Subject is a registry entry for the subjects taught.
type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AcademicSession is a school year such as "2024/25".
type AcademicSession struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TermRemark is the class teacher's free-text remark for one student's
// term, shown on the report card.
type TermRemark struct {
	ID        int    `json:"id"`
	StudentID string `json:"student_id"`
	Class     string `json:"class"`
	Term      string `json:"term"`
	Session   string `json:"session"`
	Remark    string `json:"remark"`
}
