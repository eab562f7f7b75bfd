package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
)

// GridLayout describes how an uploaded score sheet is laid out: which
// cells carry the student name, the seat/ID token and an optional
// per-row class, and where the subject blocks start. Each block is
// BlockWidth cells wide, in CA1, CA2, exam order, one block per entry
// in Subjects.
type GridLayout struct {
	NameCol       int      `json:"name_col"`
	SeatCol       int      `json:"seat_col"`
	ClassCol      int      `json:"class_col"`
	FirstBlockCol int      `json:"first_block_col"`
	BlockWidth    int      `json:"block_width"`
	Subjects      []string `json:"subjects" validate:"required,min=1"`
}

// DefaultGridLayout matches the sheets the school currently uploads:
// name, seat token, then three-cell subject blocks. No class column.
func DefaultGridLayout(subjects []string) GridLayout {
	return GridLayout{
		NameCol:       0,
		SeatCol:       1,
		ClassCol:      -1,
		FirstBlockCol: 2,
		BlockWidth:    3,
		Subjects:      subjects,
	}
}

// UnmatchedRow records a row that could not be resolved to a student,
// kept for administrator follow-up.
type UnmatchedRow struct {
	Row   int    `json:"row"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

// ImportSummary reports what a bulk import wrote.
type ImportSummary struct {
	Written        int            `json:"written"`
	UnmatchedCount int            `json:"unmatched_count"`
	Unmatched      []UnmatchedRow `json:"unmatched,omitempty"`
}

// ImportScoreGrid resolves each row of an uploaded score sheet to a
// roster student and writes the populated subject blocks through the
// same upsert path as manual entry, auto-approved. The whole file is
// one transaction: any storage failure rolls back every write. Rows
// that match no student are recorded and skipped; later rows still
// process.
func ImportScoreGrid(db *sql.DB, scale GradingScale, layout GridLayout, term, session, defaultClass string, rows [][]string) (*ImportSummary, error) {
	roster, err := database.GetStudents(db, "")
	if err != nil {
		return nil, err
	}

	rows = StripHeaderRows(rows)

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	summary := &ImportSummary{}
	for i, cells := range rows {
		name := cellAt(cells, layout.NameCol)
		seat := cellAt(cells, layout.SeatCol)
		class := cellAt(cells, layout.ClassCol)
		if class == "" {
			class = defaultClass
		}

		student := ResolveStudent(roster, name, seat, class)
		if student == nil {
			summary.Unmatched = append(summary.Unmatched, UnmatchedRow{Row: i + 1, Name: name, Class: class})
			continue
		}

		for b, subject := range layout.Subjects {
			start := layout.FirstBlockCol + b*layout.BlockWidth
			block := blockCells(cells, start, layout.BlockWidth)
			if allEmpty(block) {
				continue
			}

			patch, err := blockPatch(block)
			if err != nil {
				return nil, fmt.Errorf("row %d %s: %w", i+1, subject, err)
			}
			total := patch.CA1.Value + patch.CA2.Value + patch.Exam.Value
			patch.Grade = models.Text(scale.Classify(total).Grade)

			key := models.ResultKey{
				StudentID: student.StudentID,
				Subject:   subject,
				Term:      term,
				Session:   session,
				Class:     class,
			}
			_, err = database.UpsertResult(tx, key, patch, database.UpsertOptions{AutoApprove: true})
			if err != nil {
				return nil, fmt.Errorf("row %d %s: %w", i+1, subject, err)
			}
			summary.Written++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	summary.UnmatchedCount = len(summary.Unmatched)
	return summary, nil
}

// ResolveStudent matches a grid row to the roster, trying in order:
// exact case-insensitive trimmed full name, exact seat token against
// the student id, then case-insensitive name prefix combined with an
// exact class match. Returns nil when nothing matches.
func ResolveStudent(roster []*models.Student, name, seat, class string) *models.Student {
	wantName := strings.ToLower(strings.TrimSpace(name))
	if wantName != "" {
		for _, s := range roster {
			if strings.ToLower(strings.TrimSpace(s.FullName)) == wantName {
				return s
			}
		}
	}
	if seat = strings.TrimSpace(seat); seat != "" {
		for _, s := range roster {
			if s.StudentID == seat {
				return s
			}
		}
	}
	if wantName != "" && class != "" {
		for _, s := range roster {
			if s.Class == class && strings.HasPrefix(strings.ToLower(strings.TrimSpace(s.FullName)), wantName) {
				return s
			}
		}
	}
	return nil
}

// blockPatch parses one subject block's cells. Empty cells stay null so
// "not entered" never turns into an entered zero.
func blockPatch(block []string) (models.ResultPatch, error) {
	var patch models.ResultPatch
	fields := []*models.ScoreField{&patch.CA1, &patch.CA2, &patch.Exam}
	for i, f := range fields {
		if i >= len(block) {
			break
		}
		cell := strings.TrimSpace(block[i])
		if cell == "" {
			*f = models.NullScore()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return patch, fmt.Errorf("invalid score cell %q", cell)
		}
		*f = models.Score(v)
	}
	return patch, nil
}

// StripHeaderRows drops a leading header row and, when present, the
// weights row under it (a text row followed by an all-numeric row).
// Detection is best effort and deliberately isolated from the upsert
// contract so it can be replaced by an explicit schema declaration.
func StripHeaderRows(rows [][]string) [][]string {
	if len(rows) == 0 || !textHeavy(rows[0]) {
		return rows
	}
	rows = rows[1:]
	if len(rows) > 0 && numericOnly(rows[0]) {
		rows = rows[1:]
	}
	return rows
}

// textHeavy reports whether most populated cells are non-numeric.
func textHeavy(cells []string) bool {
	text, numeric := countKinds(cells)
	return text > 0 && text >= numeric
}

// numericOnly reports whether the row has numbers and nothing else.
// Data rows carry a name cell, so this only matches a weights row.
func numericOnly(cells []string) bool {
	text, numeric := countKinds(cells)
	return numeric > 0 && text == 0
}

func countKinds(cells []string) (text, numeric int) {
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, err := strconv.ParseFloat(c, 64); err == nil {
			numeric++
		} else {
			text++
		}
	}
	return text, numeric
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func blockCells(cells []string, start, width int) []string {
	if start < 0 || start >= len(cells) {
		return nil
	}
	end := start + width
	if end > len(cells) {
		end = len(cells)
	}
	return cells[start:end]
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
