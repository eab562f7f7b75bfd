package reports

import (
	"database/sql"
	"errors"
	"log"

	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/femi-tobi/dandeb-schools/app/services"
	"github.com/gofiber/fiber/v2"
)

// Renderer is the configured report document renderer. Left nil, the
// PDF endpoint answers 503 and the JSON endpoint is unaffected.
var Renderer services.DocumentRenderer

func buildCard(c *fiber.Ctx, db *sql.DB, approvedOnly bool) (*models.ReportCard, error) {
	term := c.Query("term")
	session := c.Query("session")
	if term == "" || session == "" {
		return nil, &models.ValidationError{Fields: []string{"term", "session"}}
	}
	return services.BuildReportCard(db, services.DefaultReportConfig(), c.Params("student_id"), term, session, approvedOnly)
}

// ReportCardAPI returns the assembled report card as JSON. Students see
// approved entries only; staff see everything including pending rows.
func ReportCardAPI(c *fiber.Ctx, db *sql.DB) error {
	role, _ := c.Locals("user_role").(string)
	approvedOnly := role == auth.RoleStudent
	if role == auth.RoleStudent {
		userID, _ := c.Locals("user_id").(string)
		if userID != c.Params("student_id") {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
	}

	card, err := buildCard(c, db, approvedOnly)
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(card)
}

// ReportCardPDFAPI renders the report card through the configured
// document renderer. Pending scores still print on this path.
func ReportCardPDFAPI(c *fiber.Ctx, db *sql.DB) error {
	if Renderer == nil {
		return c.Status(503).JSON(fiber.Map{"error": "PDF rendering is not configured"})
	}

	card, err := buildCard(c, db, false)
	if err != nil {
		return reportError(c, err)
	}

	doc, err := Renderer.Render(card)
	if err != nil {
		log.Printf("Error rendering report card for %s: %v", c.Params("student_id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render report card"})
	}
	c.Set("Content-Type", "application/pdf")
	return c.Send(doc)
}

func reportError(c *fiber.Ctx, err error) error {
	if models.IsValidation(err) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, models.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}
	log.Printf("Error building report card: %v", err)
	return c.Status(500).JSON(fiber.Map{"error": "Failed to build report card"})
}
