package auth

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up all auth-related routes
func SetupAuthRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/auth")
	api.Post("/login", func(c *fiber.Ctx) error { return AdminLoginAPI(c, db) })
	api.Post("/teacher/login", func(c *fiber.Ctx) error { return TeacherLoginAPI(c, db) })
	api.Post("/student/login", func(c *fiber.Ctx) error { return StudentLoginAPI(c, db) })
	api.Post("/logout", LogoutAPI)
}

// AuthMiddleware validates the JWT and stores the claims in the
// request context.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_name", claims.Name)
	c.Locals("user_role", claims.Role)
	return c.Next()
}

// RoleMiddleware checks if the signed-in account has one of the
// allowed roles.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
