package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
	Password  string `json:"password" validate:"required"`
}

func setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// AdminLoginAPI signs an admin in by email and password.
func AdminLoginAPI(c *fiber.Ctx, db *sql.DB) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	admin, err := database.GetAdminByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if !CheckPasswordHash(req.Password, admin.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(fmt.Sprint(admin.ID), admin.Email, RoleAdmin)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setTokenCookie(c, token)
	return c.JSON(fiber.Map{"token": token, "role": RoleAdmin})
}

// TeacherLoginAPI signs a teacher in by email and password.
func TeacherLoginAPI(c *fiber.Ctx, db *sql.DB) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	teacher, err := database.GetTeacherByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if !CheckPasswordHash(req.Password, teacher.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(fmt.Sprint(teacher.ID), teacher.FullName, RoleTeacher)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setTokenCookie(c, token)
	return c.JSON(fiber.Map{"token": token, "role": RoleTeacher, "teacher": teacher})
}

// StudentLoginAPI signs a student in by student id and password.
func StudentLoginAPI(c *fiber.Ctx, db *sql.DB) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	student, err := database.GetStudentByStudentID(db, req.StudentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if !CheckPasswordHash(req.Password, student.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(student.StudentID, student.FullName, RoleStudent)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setTokenCookie(c, token)
	return c.JSON(fiber.Map{"token": token, "role": RoleStudent, "student": student})
}

// LogoutAPI clears the token cookie.
func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"success": true})
}
