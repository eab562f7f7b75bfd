package reports

import (
	"database/sql"

	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupReportRoutes sets up report card routes
func SetupReportRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/reports", auth.AuthMiddleware)
	api.Get("/:student_id", func(c *fiber.Ctx) error { return ReportCardAPI(c, db) })
	api.Get("/:student_id/pdf", func(c *fiber.Ctx) error { return ReportCardPDFAPI(c, db) })
}
