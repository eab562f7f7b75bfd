package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// isUniqueViolation reports whether err is a Postgres duplicate-key
// failure.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}

// GetAdminByEmail fetches the admin account used for approvals.
func GetAdminByEmail(db *sql.DB, email string) (*models.Admin, error) {
	var a models.Admin
	err := db.QueryRow(`SELECT id, email, password FROM admins WHERE email = $1`, email).
		Scan(&a.ID, &a.Email, &a.Password)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return &a, nil
}

// CreateAdmin inserts an admin account with a hashed credential.
func CreateAdmin(db *sql.DB, email, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = db.Exec(`INSERT INTO admins (email, password) VALUES ($1, $2)`, email, hashed)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

// GetTeachers lists all staff accounts.
func GetTeachers(db *sql.DB) ([]*models.Teacher, error) {
	rows, err := db.Query(`SELECT id, fullname, email, password, session FROM teachers`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var t models.Teacher
		var session sql.NullString
		if err := rows.Scan(&t.ID, &t.FullName, &t.Email, &t.Password, &session); err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		if session.Valid {
			t.Session = &session.String
		}
		teachers = append(teachers, &t)
	}
	return teachers, rows.Err()
}

// GetTeacherByEmail looks a staff account up for login.
func GetTeacherByEmail(db *sql.DB, email string) (*models.Teacher, error) {
	var t models.Teacher
	var session sql.NullString
	err := db.QueryRow(`SELECT id, fullname, email, password, session FROM teachers WHERE email = $1`, email).
		Scan(&t.ID, &t.FullName, &t.Email, &t.Password, &session)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher: %w", err)
	}
	if session.Valid {
		t.Session = &session.String
	}
	return &t, nil
}

// CreateTeacher inserts a staff account with a hashed credential.
func CreateTeacher(db *sql.DB, t *models.Teacher, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	err = db.QueryRow(`
		INSERT INTO teachers (fullname, email, password, session)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.FullName, t.Email, hashed, t.Session).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("failed to insert teacher: %w", err)
	}
	return nil
}

// UpdateTeacher rewrites a staff account. A blank password keeps the
// stored hash.
func UpdateTeacher(db *sql.DB, id int, t *models.Teacher, password string) error {
	var res sql.Result
	var err error
	if password != "" {
		var hashed string
		hashed, err = hashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		res, err = db.Exec(`UPDATE teachers SET fullname = $1, email = $2, password = $3, session = $4 WHERE id = $5`,
			t.FullName, t.Email, hashed, t.Session, id)
	} else {
		res, err = db.Exec(`UPDATE teachers SET fullname = $1, email = $2, session = $3 WHERE id = $4`,
			t.FullName, t.Email, t.Session, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteTeacher removes a staff account and its class assignments.
func DeleteTeacher(db *sql.DB, id int) error {
	if _, err := db.Exec(`DELETE FROM teacher_classes WHERE teacher_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear teacher classes: %w", err)
	}
	res, err := db.Exec(`DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AssignTeacherClasses replaces the teacher's class assignments.
func AssignTeacherClasses(db *sql.DB, teacherID int, classIDs []int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM teacher_classes WHERE teacher_id = $1`, teacherID); err != nil {
		return fmt.Errorf("failed to clear teacher classes: %w", err)
	}
	for _, classID := range classIDs {
		if _, err := tx.Exec(`INSERT INTO teacher_classes (teacher_id, class_id) VALUES ($1, $2)`, teacherID, classID); err != nil {
			return fmt.Errorf("failed to assign class %d: %w", classID, err)
		}
	}
	return tx.Commit()
}

// GetTeacherClasses lists the classes assigned to a teacher.
func GetTeacherClasses(db *sql.DB, teacherID int) ([]*models.Class, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name
		FROM classes c
		JOIN teacher_classes tc ON c.id = tc.class_id
		WHERE tc.teacher_id = $1
	`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, &c)
	}
	return classes, rows.Err()
}

// GetTeacherStudents lists every student whose class is assigned to the
// teacher. Matching is by class name since students carry class names,
// not class ids.
func GetTeacherStudents(db *sql.DB, teacherID int) ([]*models.Student, error) {
	rows, err := db.Query(`
		SELECT `+studentColumns+`
		FROM students
		WHERE class IN (
			SELECT c.name FROM classes c
			JOIN teacher_classes tc ON c.id = tc.class_id
			WHERE tc.teacher_id = $1
		)
	`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teacher students: %w", err)
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
