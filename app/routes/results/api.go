package results

import (
	"database/sql"
	"errors"
	"log"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/gofiber/fiber/v2"
)

type manualEntryRequest struct {
	models.ResultKey
	models.ResultPatch
}

// ManualEntryAPI writes one result through the upsert path. A repeat
// submission for the same student/subject/term/session/class merges
// into the stored row and resets its approval.
func ManualEntryAPI(c *fiber.Ctx, db *sql.DB) error {
	var req manualEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	outcome, err := database.UpsertResult(db, req.ResultKey, req.ResultPatch, database.UpsertOptions{})
	if err != nil {
		if models.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, models.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Result already exists"})
		}
		log.Printf("Error saving result for %s/%s: %v", req.StudentID, req.Subject, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save result"})
	}

	status := 200
	if outcome.Created {
		status = 201
	}
	return c.Status(status).JSON(outcome)
}

// UpdateResultAPI patches a stored row by id. The identity key comes
// from the row itself, so the edit flows through the same merge and
// approval-reset rules as manual entry.
func UpdateResultAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid result id"})
	}

	var patch models.ResultPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	existing, err := database.GetResultByID(db, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Result not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch result"})
	}

	key := models.ResultKey{
		StudentID: existing.StudentID,
		Subject:   existing.Subject,
		Term:      existing.Term,
		Session:   existing.Session,
		Class:     existing.Class,
	}
	outcome, err := database.UpsertResult(db, key, patch, database.UpsertOptions{})
	if err != nil {
		log.Printf("Error updating result %d: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update result"})
	}
	return c.JSON(outcome)
}

// ListResultsAPI returns results filtered by any combination of
// student_id, subject, term, session, class and approved query params.
func ListResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.ResultFilters{
		StudentID: c.Query("student_id"),
		Subject:   c.Query("subject"),
		Term:      c.Query("term"),
		Session:   c.Query("session"),
		Class:     c.Query("class"),
	}
	switch c.Query("approved") {
	case "true":
		v := true
		filters.Approved = &v
	case "false":
		v := false
		filters.Approved = &v
	}

	results, err := database.ListResults(db, filters)
	if err != nil {
		log.Printf("Error listing results: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch results"})
	}
	return c.JSON(results)
}

// StudentResultsAPI returns a student's approved results for a term and
// session. Pending entries never show on this path.
func StudentResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	approved := true
	filters := database.ResultFilters{
		StudentID: c.Params("student_id"),
		Term:      c.Query("term"),
		Session:   c.Query("session"),
		Approved:  &approved,
	}
	results, err := database.ListResults(db, filters)
	if err != nil {
		log.Printf("Error fetching student results: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch results"})
	}
	return c.JSON(results)
}

func PendingApprovalsAPI(c *fiber.Ctx, db *sql.DB) error {
	pending, err := database.GetPendingApprovals(db)
	if err != nil {
		log.Printf("Error fetching pending approvals: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pending approvals"})
	}
	return c.JSON(pending)
}

// ApproveAPI signs off one student's results for a term and session.
func ApproveAPI(c *fiber.Ctx, db *sql.DB) error {
	var item database.ApprovalItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if item.StudentID == "" || item.Term == "" || item.Session == "" {
		return c.Status(400).JSON(fiber.Map{"error": "student_id, term and session are required"})
	}
	if err := database.ApproveStudentResults(db, item.StudentID, item.Term, item.Session); err != nil {
		log.Printf("Error approving results: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to approve results"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type approveBulkRequest struct {
	Items []database.ApprovalItem `json:"items" validate:"required,min=1"`
}

// ApproveBulkAPI signs off several student/term/session groups. Items
// that fail are skipped; the response reports how many were applied.
func ApproveBulkAPI(c *fiber.Ctx, db *sql.DB) error {
	var req approveBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	processed, err := database.ApproveResultsBulk(db, req.Items)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to approve results"})
	}
	return c.JSON(fiber.Map{"success": true, "processed": processed})
}

func DeleteResultAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid result id"})
	}
	if err := database.DeleteResult(db, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Result not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete result"})
	}
	return c.JSON(fiber.Map{"success": true})
}
