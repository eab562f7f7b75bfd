package students

import (
	"database/sql"
	"errors"
	"log"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/femi-tobi/dandeb-schools/app/services"
	"github.com/gofiber/fiber/v2"
)

type studentRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	FullName  string  `json:"fullname" validate:"required"`
	Class     string  `json:"class" validate:"required"`
	Password  string  `json:"password"`
	Photo     *string `json:"photo"`
	Session   *string `json:"session"`
	Gender    *string `json:"gender"`
	DOB       *string `json:"dob"`
}

// ListStudentsAPI returns the roster, optionally limited to one class
// via the ?class= query.
func ListStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetStudents(db, c.Query("class"))
	if err != nil {
		log.Printf("Error fetching students: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(students)
}

func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByStudentID(db, c.Params("student_id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(student)
}

func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Password == "" {
		// New accounts default to the student id as password.
		req.Password = req.StudentID
	}

	student := &models.Student{
		StudentID: req.StudentID,
		FullName:  req.FullName,
		Class:     req.Class,
		Photo:     req.Photo,
		Session:   req.Session,
		Gender:    req.Gender,
		DOB:       req.DOB,
	}
	if err := database.CreateStudent(db, student, req.Password); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Student ID already exists"})
		}
		log.Printf("Error creating student: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}
	return c.Status(201).JSON(student)
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid student id"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	student := &models.Student{
		StudentID: req.StudentID,
		FullName:  req.FullName,
		Class:     req.Class,
		Photo:     req.Photo,
		Session:   req.Session,
		Gender:    req.Gender,
		DOB:       req.DOB,
	}
	if err := database.UpdateStudent(db, id, student, req.Password); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("Error updating student %d: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid student id"})
	}
	if err := database.DeleteStudent(db, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}
	return c.JSON(fiber.Map{"success": true})
}

type promoteRequest struct {
	Session string `json:"session" validate:"required"`
}

// PromoteStudentAPI evaluates the student's approved results for the
// session and moves them up a class when the gates pass. A refusal is a
// 200 with promoted=false and the reason, not an error.
func PromoteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req promoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	outcome, err := services.PromoteStudent(db, services.DefaultPromotionConfig(), c.Params("student_id"), req.Session)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("Error promoting student %s: %v", c.Params("student_id"), err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to evaluate promotion"})
	}
	return c.JSON(outcome)
}
