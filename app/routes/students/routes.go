package students

import (
	"database/sql"

	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up roster management routes
func SetupStudentRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/students", auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error { return ListStudentsAPI(c, db) })
	api.Get("/:student_id", func(c *fiber.Ctx) error { return GetStudentAPI(c, db) })

	admin := api.Group("/", auth.RoleMiddleware(auth.RoleAdmin))
	admin.Post("/", func(c *fiber.Ctx) error { return CreateStudentAPI(c, db) })
	admin.Put("/:id", func(c *fiber.Ctx) error { return UpdateStudentAPI(c, db) })
	admin.Delete("/:id", func(c *fiber.Ctx) error { return DeleteStudentAPI(c, db) })
	admin.Post("/:student_id/promote", func(c *fiber.Ctx) error { return PromoteStudentAPI(c, db) })
}
