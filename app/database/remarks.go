package database

import (
	"database/sql"
	"fmt"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

// GetTermRemark fetches the class teacher's remark for one student's
// term, or ErrNotFound when none was written yet.
func GetTermRemark(db *sql.DB, studentID, class, term, session string) (*models.TermRemark, error) {
	var r models.TermRemark
	err := db.QueryRow(`
		SELECT id, student_id, class, term, session, remark
		FROM remarks
		WHERE student_id = $1 AND class = $2 AND term = $3 AND session = $4
	`, studentID, class, term, session).Scan(&r.ID, &r.StudentID, &r.Class, &r.Term, &r.Session, &r.Remark)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remark: %w", err)
	}
	return &r, nil
}

// UpsertTermRemark adds or replaces the remark for the quadruple.
func UpsertTermRemark(db *sql.DB, r *models.TermRemark) error {
	existing, err := GetTermRemark(db, r.StudentID, r.Class, r.Term, r.Session)
	if err != nil && err != models.ErrNotFound {
		return err
	}
	if existing != nil {
		_, err := db.Exec(`UPDATE remarks SET remark = $1 WHERE id = $2`, r.Remark, existing.ID)
		if err != nil {
			return fmt.Errorf("failed to update remark: %w", err)
		}
		r.ID = existing.ID
		return nil
	}
	err = db.QueryRow(`
		INSERT INTO remarks (student_id, class, term, session, remark)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.StudentID, r.Class, r.Term, r.Session, r.Remark).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("failed to insert remark: %w", err)
	}
	return nil
}
