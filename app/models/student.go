package models

import "time"

// Student is one enrolled learner. StudentID is the school-issued
// identifier printed on the report card, distinct from the row id.
// Results reference students by StudentID value, not by foreign key.
type Student struct {
	ID        int       `json:"id"`
	StudentID string    `json:"student_id"`
	FullName  string    `json:"fullname"`
	Class     string    `json:"class"`
	Password  string    `json:"-"`
	Photo     *string   `json:"photo,omitempty"`
	Session   *string   `json:"session,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	DOB       *string   `json:"dob,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Teacher is a staff account that signs in with an email address.
type Teacher struct {
	ID       int     `json:"id"`
	FullName string  `json:"fullname"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Session  *string `json:"session,omitempty"`
}

// Admin is the administrative account that approves results.
type Admin struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
