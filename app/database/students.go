package database

import (
	"database/sql"
	"fmt"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

const studentColumns = `id, student_id, fullname, class, password, photo, session, gender, dob, created_at`

func scanStudent(scan func(dest ...interface{}) error) (*models.Student, error) {
	var s models.Student
	var photo, session, gender, dob sql.NullString
	err := scan(&s.ID, &s.StudentID, &s.FullName, &s.Class, &s.Password,
		&photo, &session, &gender, &dob, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if photo.Valid {
		s.Photo = &photo.String
	}
	if session.Valid {
		s.Session = &session.String
	}
	if gender.Valid {
		s.Gender = &gender.String
	}
	if dob.Valid {
		s.DOB = &dob.String
	}
	return &s, nil
}

// GetStudents returns the whole roster, optionally narrowed to a class.
func GetStudents(db *sql.DB, class string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	var args []interface{}
	if class != "" {
		query += ` WHERE class = $1`
		args = append(args, class)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentByStudentID looks a student up by the school-issued id.
func GetStudentByStudentID(db *sql.DB, studentID string) (*models.Student, error) {
	row := db.QueryRow(`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID)
	s, err := scanStudent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return s, nil
}

// CreateStudent inserts a roster entry with a bcrypt-hashed credential.
func CreateStudent(db *sql.DB, s *models.Student, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	err = db.QueryRow(`
		INSERT INTO students (student_id, fullname, class, password, photo, session, gender, dob)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, s.StudentID, s.FullName, s.Class, hashed, s.Photo, s.Session, s.Gender, s.DOB).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// UpdateStudent rewrites the mutable roster fields. A blank password
// keeps the stored hash; a blank photo keeps the stored reference.
func UpdateStudent(db *sql.DB, id int, s *models.Student, password string) error {
	query := `UPDATE students SET fullname = $1, class = $2, session = $3, gender = $4, dob = $5`
	args := []interface{}{s.FullName, s.Class, s.Session, s.Gender, s.DOB}
	if password != "" {
		hashed, err := hashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		args = append(args, hashed)
		query += fmt.Sprintf(", password = $%d", len(args))
	}
	if s.Photo != nil {
		args = append(args, *s.Photo)
		query += fmt.Sprintf(", photo = $%d", len(args))
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	res, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateStudentClass moves the student to a new class. Promotion uses
// this; the change is immediate and no history row is kept.
func UpdateStudentClass(db *sql.DB, studentID, class string) error {
	res, err := db.Exec(`UPDATE students SET class = $1 WHERE student_id = $2`, class, studentID)
	if err != nil {
		return fmt.Errorf("failed to update student class: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteStudent removes a roster entry. Result rows keyed by the
// student id are left in place.
func DeleteStudent(db *sql.DB, id int) error {
	res, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
