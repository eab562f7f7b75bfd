package results

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/femi-tobi/dandeb-schools/app/services"
	"github.com/gofiber/fiber/v2"
)

// UploadCSVAPI ingests a row-per-result CSV file. The header names the
// columns (student_id, subject, ca1, ca2, ca3, score, grade, remark);
// term, session and class come from form fields. All rows land in one
// transaction, auto-approved, with unspecified scores stored as 0.
func UploadCSVAPI(c *fiber.Ctx, db *sql.DB) error {
	term := c.FormValue("term")
	session := c.FormValue("session")
	class := c.FormValue("class")
	if term == "" || session == "" || class == "" {
		return c.Status(400).JSON(fiber.Map{"error": "term, session and class are required"})
	}

	rows, err := readCSVUpload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if len(rows) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "CSV has no data rows"})
	}

	cols := columnIndex(rows[0])
	if cols["student_id"] < 0 || cols["subject"] < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "CSV must have student_id and subject columns"})
	}

	tx, err := db.Begin()
	if err != nil {
		log.Printf("Error starting upload transaction: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to process upload"})
	}
	defer tx.Rollback()

	written := 0
	for i, row := range rows[1:] {
		key := models.ResultKey{
			StudentID: field(row, cols["student_id"]),
			Subject:   field(row, cols["subject"]),
			Term:      term,
			Session:   session,
			Class:     class,
		}
		patch, err := rowPatch(row, cols)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("row %d: %v", i+2, err)})
		}

		if _, err := database.UpsertResult(tx, key, patch, database.UpsertOptions{DefaultZero: true, AutoApprove: true}); err != nil {
			if models.IsValidation(err) {
				return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("row %d: %v", i+2, err)})
			}
			log.Printf("Error upserting CSV row %d: %v", i+2, err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to process upload"})
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing upload: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to process upload"})
	}
	return c.JSON(fiber.Map{"success": true, "written": written})
}

// ImportGridAPI ingests a wide score sheet where each row is a student
// and subjects sit in fixed blocks of CA1, CA2, exam cells. The subjects
// form field lists the block order, comma separated.
func ImportGridAPI(c *fiber.Ctx, db *sql.DB) error {
	term := c.FormValue("term")
	session := c.FormValue("session")
	class := c.FormValue("class")
	if term == "" || session == "" || class == "" {
		return c.Status(400).JSON(fiber.Map{"error": "term, session and class are required"})
	}

	var subjects []string
	for _, s := range strings.Split(c.FormValue("subjects"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}
	if len(subjects) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "subjects is required"})
	}

	rows, err := readCSVUpload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	layout := services.DefaultGridLayout(subjects)
	summary, err := services.ImportScoreGrid(db, services.DefaultGradingScale, layout, term, session, class, rows)
	if err != nil {
		if models.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Error importing score grid: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to import score sheet"})
	}
	return c.JSON(summary)
}

func readCSVUpload(c *fiber.Ctx) ([][]string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %v", err)
	}
	return rows, nil
}

// columnIndex maps the known header names to their positions, -1 when
// absent. Header matching is case-insensitive.
func columnIndex(header []string) map[string]int {
	cols := map[string]int{
		"student_id": -1, "subject": -1, "ca1": -1, "ca2": -1,
		"ca3": -1, "score": -1, "grade": -1, "remark": -1,
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "exam" {
			name = "score"
		}
		if _, ok := cols[name]; ok {
			cols[name] = i
		}
	}
	return cols
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowPatch(row []string, cols map[string]int) (models.ResultPatch, error) {
	var patch models.ResultPatch
	scores := []struct {
		name  string
		field *models.ScoreField
	}{
		{"ca1", &patch.CA1}, {"ca2", &patch.CA2}, {"ca3", &patch.CA3}, {"score", &patch.Exam},
	}
	for _, s := range scores {
		cell := field(row, cols[s.name])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return patch, fmt.Errorf("invalid %s value %q", s.name, cell)
		}
		*s.field = models.Score(v)
	}
	if g := field(row, cols["grade"]); g != "" {
		patch.Grade = models.Text(g)
	}
	if r := field(row, cols["remark"]); r != "" {
		patch.Remark = models.Text(r)
	}
	return patch, nil
}
