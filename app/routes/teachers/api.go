package teachers

import (
	"database/sql"
	"errors"
	"log"
	"strconv"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/gofiber/fiber/v2"
)

type teacherRequest struct {
	FullName string  `json:"fullname" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password"`
	Session  *string `json:"session"`
}

func ListTeachersAPI(c *fiber.Ctx, db *sql.DB) error {
	teachers, err := database.GetTeachers(db)
	if err != nil {
		log.Printf("Error fetching teachers: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}
	return c.JSON(teachers)
}

func CreateTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Password is required"})
	}

	teacher := &models.Teacher{FullName: req.FullName, Email: req.Email, Session: req.Session}
	if err := database.CreateTeacher(db, teacher, req.Password); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Email already registered"})
		}
		log.Printf("Error creating teacher: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create teacher"})
	}
	return c.Status(201).JSON(teacher)
}

func UpdateTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	teacher := &models.Teacher{FullName: req.FullName, Email: req.Email, Session: req.Session}
	if err := database.UpdateTeacher(db, id, teacher, req.Password); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		log.Printf("Error updating teacher %d: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update teacher"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func DeleteTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}
	if err := database.DeleteTeacher(db, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type assignClassesRequest struct {
	ClassIDs []int `json:"class_ids" validate:"required"`
}

// AssignClassesAPI replaces the teacher's class assignments.
func AssignClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	var req assignClassesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := database.AssignTeacherClasses(db, id, req.ClassIDs); err != nil {
		log.Printf("Error assigning classes to teacher %d: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to assign classes"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func TeacherClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}
	classes, err := database.GetTeacherClasses(db, id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(classes)
}

// MyStudentsAPI lists the students in the signed-in teacher's classes.
func MyStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	userID, _ := c.Locals("user_id").(string)
	id, err := strconv.Atoi(userID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account"})
	}
	students, err := database.GetTeacherStudents(db, id)
	if err != nil {
		log.Printf("Error fetching teacher %d students: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(students)
}
