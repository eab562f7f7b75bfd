package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

// Querier is the subset of *sql.DB and *sql.Tx the result store needs,
// so the bulk importer can run the same upserts inside a transaction.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// UpsertOptions control how UpsertResult fills gaps on insert.
type UpsertOptions struct {
	// DefaultZero stores 0 instead of NULL for score fields the caller
	// left unspecified. The CSV upload path uses this.
	DefaultZero bool
	// AutoApprove marks the written row approved immediately instead of
	// leaving it pending admin sign-off. Bulk paths use this.
	AutoApprove bool
}

// UpsertOutcome reports what UpsertResult did with the row.
type UpsertOutcome struct {
	ID      int  `json:"id"`
	Created bool `json:"created"`
}

const resultColumns = `id, student_id, subject, ca1, ca2, ca3, score, grade, remark,
		term, session, class, approved, created_at, updated_at`

// UpsertResult inserts a new result row or merges the patch into the
// one already stored under the identity key. Validation runs before any
// storage call. Merged rows always drop back to unapproved so an admin
// has to sign them off again.
func UpsertResult(q Querier, key models.ResultKey, patch models.ResultPatch, opts UpsertOptions) (*UpsertOutcome, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	existing, err := GetResultByKey(q, key)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up result: %w", err)
	}

	if existing == nil {
		query := `
			INSERT INTO results (student_id, subject, ca1, ca2, ca3, score, grade, remark, term, session, class, approved)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`
		var id int
		err := q.QueryRow(query,
			key.StudentID, key.Subject,
			scoreArg(patch.CA1, opts.DefaultZero),
			scoreArg(patch.CA2, opts.DefaultZero),
			scoreArg(patch.CA3, opts.DefaultZero),
			scoreArg(patch.Exam, opts.DefaultZero),
			textArg(patch.Grade), textArg(patch.Remark),
			key.Term, key.Session, key.Class,
			opts.AutoApprove,
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, models.ErrConflict
			}
			return nil, fmt.Errorf("failed to insert result: %w", err)
		}
		return &UpsertOutcome{ID: id, Created: true}, nil
	}

	merged := MergeResult(existing, patch)
	if opts.AutoApprove {
		merged.Approved = true
	}
	_, err = q.Exec(`
		UPDATE results
		SET ca1 = $1, ca2 = $2, ca3 = $3, score = $4, grade = $5, remark = $6, approved = $7, updated_at = NOW()
		WHERE id = $8
	`, merged.CA1, merged.CA2, merged.CA3, merged.Exam, merged.Grade, merged.Remark, merged.Approved, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update result: %w", err)
	}
	return &UpsertOutcome{ID: existing.ID, Created: false}, nil
}

// MergeResult applies the patch over an existing row. A field only
// replaces the stored value when the caller sent a usable value; null,
// blank and absent fields keep what is there. The merged row is
// unapproved: a teacher edit invalidates the previous sign-off.
func MergeResult(existing *models.Result, patch models.ResultPatch) models.Result {
	merged := *existing
	if patch.CA1.Valid {
		merged.CA1 = patch.CA1.Ptr()
	}
	if patch.CA2.Valid {
		merged.CA2 = patch.CA2.Ptr()
	}
	if patch.CA3.Valid {
		merged.CA3 = patch.CA3.Ptr()
	}
	if patch.Exam.Valid {
		merged.Exam = patch.Exam.Ptr()
	}
	if patch.Grade.Valid {
		merged.Grade = patch.Grade.Value
	}
	if patch.Remark.Valid {
		merged.Remark = patch.Remark.Value
	}
	merged.Approved = false
	return merged
}

func scoreArg(f models.ScoreField, defaultZero bool) interface{} {
	if f.Valid {
		return f.Value
	}
	if defaultZero {
		return 0.0
	}
	return nil
}

func textArg(f models.TextField) string {
	if f.Valid {
		return f.Value
	}
	return ""
}

// GetResultByKey fetches the single row stored under the identity key.
func GetResultByKey(q Querier, key models.ResultKey) (*models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE student_id = $1 AND subject = $2 AND term = $3 AND session = $4 AND class = $5
	`
	row := q.QueryRow(query, key.StudentID, key.Subject, key.Term, key.Session, key.Class)
	return scanResult(row)
}

// GetResultByID fetches one row by its persisted id.
func GetResultByID(q Querier, id int) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`
	return scanResult(q.QueryRow(query, id))
}

func scanResult(row *sql.Row) (*models.Result, error) {
	var r models.Result
	var ca1, ca2, ca3, exam sql.NullFloat64
	var grade, remark sql.NullString
	err := row.Scan(
		&r.ID, &r.StudentID, &r.Subject, &ca1, &ca2, &ca3, &exam,
		&grade, &remark, &r.Term, &r.Session, &r.Class, &r.Approved,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}
	assignNullables(&r, ca1, ca2, ca3, exam, grade, remark)
	return &r, nil
}

func assignNullables(r *models.Result, ca1, ca2, ca3, exam sql.NullFloat64, grade, remark sql.NullString) {
	if ca1.Valid {
		r.CA1 = &ca1.Float64
	}
	if ca2.Valid {
		r.CA2 = &ca2.Float64
	}
	if ca3.Valid {
		r.CA3 = &ca3.Float64
	}
	if exam.Valid {
		r.Exam = &exam.Float64
	}
	r.Grade = grade.String
	r.Remark = remark.String
}

// ResultFilters narrow ListResults. Zero-valued filters impose no
// constraint; set filters AND together.
type ResultFilters struct {
	StudentID string
	Subject   string
	Term      string
	Session   string
	Class     string
	Approved  *bool
}

// whereClause builds the conjunctive WHERE fragment and its arguments.
func (f ResultFilters) whereClause() (string, []interface{}) {
	var clauses []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if f.StudentID != "" {
		add("student_id", f.StudentID)
	}
	if f.Subject != "" {
		add("subject", f.Subject)
	}
	if f.Term != "" {
		add("term", f.Term)
	}
	if f.Session != "" {
		add("session", f.Session)
	}
	if f.Class != "" {
		add("class", f.Class)
	}
	if f.Approved != nil {
		add("approved", *f.Approved)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// ListResults fetches every row matching the filters, in storage order.
// Callers that need a particular order sort on their side.
func ListResults(q Querier, filters ResultFilters) ([]*models.Result, error) {
	where, args := filters.whereClause()
	rows, err := q.Query(`SELECT `+resultColumns+` FROM results`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		var r models.Result
		var ca1, ca2, ca3, exam sql.NullFloat64
		var grade, remark sql.NullString
		err := rows.Scan(
			&r.ID, &r.StudentID, &r.Subject, &ca1, &ca2, &ca3, &exam,
			&grade, &remark, &r.Term, &r.Session, &r.Class, &r.Approved,
			&r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		assignNullables(&r, ca1, ca2, ca3, exam, grade, remark)
		results = append(results, &r)
	}
	return results, rows.Err()
}

// ApproveStudentResults signs off every result the student has for the
// term and session, whatever the subject or class on the row. Running
// it again is a no-op.
func ApproveStudentResults(db *sql.DB, studentID, term, session string) error {
	_, err := db.Exec(
		`UPDATE results SET approved = true, updated_at = NOW() WHERE student_id = $1 AND term = $2 AND session = $3`,
		studentID, term, session,
	)
	if err != nil {
		return fmt.Errorf("failed to approve results: %w", err)
	}
	return nil
}

// ApprovalItem identifies one pending batch of results to sign off.
type ApprovalItem struct {
	StudentID string `json:"student_id"`
	Term      string `json:"term"`
	Session   string `json:"session"`
}

// ApproveResultsBulk processes each item independently and returns how
// many were applied. A bad or failing triple is skipped, never aborting
// the rest of the batch.
func ApproveResultsBulk(db *sql.DB, items []ApprovalItem) (int, error) {
	processed := 0
	for _, it := range items {
		if it.StudentID == "" || it.Term == "" || it.Session == "" {
			continue
		}
		if err := ApproveStudentResults(db, it.StudentID, it.Term, it.Session); err != nil {
			log.Printf("Bulk approve failed for %s %s %s: %v", it.StudentID, it.Term, it.Session, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// PendingApproval is one student/term/session group still waiting for
// admin sign-off.
type PendingApproval struct {
	StudentID string `json:"student_id"`
	FullName  string `json:"fullname"`
	Class     string `json:"class"`
	Term      string `json:"term"`
	Session   string `json:"session"`
}

// GetPendingApprovals lists the distinct student/term/session groups
// that still have unapproved entries.
func GetPendingApprovals(db *sql.DB) ([]*PendingApproval, error) {
	query := `
		SELECT r.student_id, s.fullname, s.class, r.term, r.session
		FROM results r
		JOIN students s ON r.student_id = s.student_id
		WHERE r.approved = false
		GROUP BY r.student_id, s.fullname, s.class, r.term, r.session
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending approvals: %w", err)
	}
	defer rows.Close()

	var pending []*PendingApproval
	for rows.Next() {
		var p PendingApproval
		if err := rows.Scan(&p.StudentID, &p.FullName, &p.Class, &p.Term, &p.Session); err != nil {
			return nil, fmt.Errorf("failed to scan pending approval: %w", err)
		}
		pending = append(pending, &p)
	}
	return pending, rows.Err()
}

// DeleteResult purges one row. Reserved for administrative cleanup.
func DeleteResult(db *sql.DB, id int) error {
	res, err := db.Exec(`DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
