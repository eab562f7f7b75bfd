package settings

import (
	"database/sql"

	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes sets up registry and remark routes
func SetupSettingsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/settings", auth.AuthMiddleware)

	staff := auth.RoleMiddleware(auth.RoleAdmin, auth.RoleTeacher)
	admin := auth.RoleMiddleware(auth.RoleAdmin)

	api.Get("/classes", func(c *fiber.Ctx) error { return ListClassesAPI(c, db) })
	api.Post("/classes", admin, func(c *fiber.Ctx) error { return CreateClassAPI(c, db) })
	api.Delete("/classes/:id", admin, func(c *fiber.Ctx) error { return DeleteClassAPI(c, db) })

	api.Get("/subjects", func(c *fiber.Ctx) error { return ListSubjectsAPI(c, db) })
	api.Post("/subjects", admin, func(c *fiber.Ctx) error { return CreateSubjectAPI(c, db) })
	api.Delete("/subjects/:id", admin, func(c *fiber.Ctx) error { return DeleteSubjectAPI(c, db) })

	api.Get("/sessions", func(c *fiber.Ctx) error { return ListSessionsAPI(c, db) })
	api.Post("/sessions", admin, func(c *fiber.Ctx) error { return CreateSessionAPI(c, db) })
	api.Delete("/sessions/:id", admin, func(c *fiber.Ctx) error { return DeleteSessionAPI(c, db) })

	api.Get("/remarks/:student_id", staff, func(c *fiber.Ctx) error { return GetRemarkAPI(c, db) })
	api.Post("/remarks", staff, func(c *fiber.Ctx) error { return SaveRemarkAPI(c, db) })
}
