package results

import (
	"database/sql"

	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupResultRoutes sets up result entry, import and approval routes
func SetupResultRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/results", auth.AuthMiddleware)

	staff := auth.RoleMiddleware(auth.RoleAdmin, auth.RoleTeacher)
	admin := auth.RoleMiddleware(auth.RoleAdmin)

	api.Get("/", staff, func(c *fiber.Ctx) error { return ListResultsAPI(c, db) })
	api.Get("/student/:student_id", func(c *fiber.Ctx) error { return StudentResultsAPI(c, db) })

	api.Post("/manual", staff, func(c *fiber.Ctx) error { return ManualEntryAPI(c, db) })
	api.Put("/:id", staff, func(c *fiber.Ctx) error { return UpdateResultAPI(c, db) })

	api.Post("/upload", staff, func(c *fiber.Ctx) error { return UploadCSVAPI(c, db) })
	api.Post("/import-grid", staff, func(c *fiber.Ctx) error { return ImportGridAPI(c, db) })

	api.Get("/pending", admin, func(c *fiber.Ctx) error { return PendingApprovalsAPI(c, db) })
	api.Post("/approve", admin, func(c *fiber.Ctx) error { return ApproveAPI(c, db) })
	api.Post("/approve-bulk", admin, func(c *fiber.Ctx) error { return ApproveBulkAPI(c, db) })

	api.Delete("/:id", admin, func(c *fiber.Ctx) error { return DeleteResultAPI(c, db) })
}
