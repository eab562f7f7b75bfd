package database

import (
	"database/sql"
	"fmt"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

// The class, subject and session registries are plain name lists that
// feed the entry forms. They share the same shape.

func listNamed(db *sql.DB, table string) ([]int, []string, error) {
	rows, err := db.Query(`SELECT id, name FROM ` + table + ` ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	defer rows.Close()

	var ids []int
	var names []string
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		ids = append(ids, id)
		names = append(names, name)
	}
	return ids, names, rows.Err()
}

func insertNamed(db *sql.DB, table, name string) (int, error) {
	var id int
	err := db.QueryRow(`INSERT INTO `+table+` (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, models.ErrConflict
		}
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return id, nil
}

func deleteNamed(db *sql.DB, table string, id int) error {
	res, err := db.Exec(`DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func GetClasses(db *sql.DB) ([]*models.Class, error) {
	ids, names, err := listNamed(db, "classes")
	if err != nil {
		return nil, err
	}
	classes := make([]*models.Class, len(ids))
	for i := range ids {
		classes[i] = &models.Class{ID: ids[i], Name: names[i]}
	}
	return classes, nil
}

func CreateClass(db *sql.DB, name string) (*models.Class, error) {
	id, err := insertNamed(db, "classes", name)
	if err != nil {
		return nil, err
	}
	return &models.Class{ID: id, Name: name}, nil
}

func DeleteClass(db *sql.DB, id int) error {
	return deleteNamed(db, "classes", id)
}

func GetSubjects(db *sql.DB) ([]*models.Subject, error) {
	ids, names, err := listNamed(db, "subjects")
	if err != nil {
		return nil, err
	}
	subjects := make([]*models.Subject, len(ids))
	for i := range ids {
		subjects[i] = &models.Subject{ID: ids[i], Name: names[i]}
	}
	return subjects, nil
}

func CreateSubject(db *sql.DB, name string) (*models.Subject, error) {
	id, err := insertNamed(db, "subjects", name)
	if err != nil {
		return nil, err
	}
	return &models.Subject{ID: id, Name: name}, nil
}

func DeleteSubject(db *sql.DB, id int) error {
	return deleteNamed(db, "subjects", id)
}

func GetSessions(db *sql.DB) ([]*models.AcademicSession, error) {
	ids, names, err := listNamed(db, "sessions")
	if err != nil {
		return nil, err
	}
	sessions := make([]*models.AcademicSession, len(ids))
	for i := range ids {
		sessions[i] = &models.AcademicSession{ID: ids[i], Name: names[i]}
	}
	return sessions, nil
}

func CreateSession(db *sql.DB, name string) (*models.AcademicSession, error) {
	id, err := insertNamed(db, "sessions", name)
	if err != nil {
		return nil, err
	}
	return &models.AcademicSession{ID: id, Name: name}, nil
}

func DeleteSession(db *sql.DB, id int) error {
	return deleteNamed(db, "sessions", id)
}
