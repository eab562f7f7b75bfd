package teachers

import (
	"database/sql"

	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupTeacherRoutes sets up teacher account management routes
func SetupTeacherRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/teachers", auth.AuthMiddleware)

	api.Get("/me/students", auth.RoleMiddleware(auth.RoleTeacher), func(c *fiber.Ctx) error {
		return MyStudentsAPI(c, db)
	})

	admin := api.Group("/", auth.RoleMiddleware(auth.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error { return ListTeachersAPI(c, db) })
	admin.Post("/", func(c *fiber.Ctx) error { return CreateTeacherAPI(c, db) })
	admin.Put("/:id", func(c *fiber.Ctx) error { return UpdateTeacherAPI(c, db) })
	admin.Delete("/:id", func(c *fiber.Ctx) error { return DeleteTeacherAPI(c, db) })
	admin.Post("/:id/classes", func(c *fiber.Ctx) error { return AssignClassesAPI(c, db) })
	admin.Get("/:id/classes", func(c *fiber.Ctx) error { return TeacherClassesAPI(c, db) })
}
