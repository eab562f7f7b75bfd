package settings

import (
	"database/sql"
	"errors"
	"log"

	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/gofiber/fiber/v2"
)

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

func parseName(c *fiber.Ctx) (string, error) {
	var req nameRequest
	if err := c.BodyParser(&req); err != nil {
		return "", errors.New("Invalid request")
	}
	if err := models.ValidateStruct(&req); err != nil {
		return "", err
	}
	return req.Name, nil
}

func ListClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.GetClasses(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(classes)
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	name, err := parseName(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	class, err := database.CreateClass(db, name)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Class already exists"})
		}
		log.Printf("Error creating class: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(201).JSON(class)
}

func DeleteClassAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid class id"})
	}
	if err := database.DeleteClass(db, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete class"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func ListSubjectsAPI(c *fiber.Ctx, db *sql.DB) error {
	subjects, err := database.GetSubjects(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	return c.JSON(subjects)
}

func CreateSubjectAPI(c *fiber.Ctx, db *sql.DB) error {
	name, err := parseName(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	subject, err := database.CreateSubject(db, name)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Subject already exists"})
		}
		log.Printf("Error creating subject: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create subject"})
	}
	return c.Status(201).JSON(subject)
}

func DeleteSubjectAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid subject id"})
	}
	if err := database.DeleteSubject(db, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Subject not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete subject"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func ListSessionsAPI(c *fiber.Ctx, db *sql.DB) error {
	sessions, err := database.GetSessions(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}
	return c.JSON(sessions)
}

func CreateSessionAPI(c *fiber.Ctx, db *sql.DB) error {
	name, err := parseName(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	session, err := database.CreateSession(db, name)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return c.Status(409).JSON(fiber.Map{"error": "Session already exists"})
		}
		log.Printf("Error creating session: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}
	return c.Status(201).JSON(session)
}

func DeleteSessionAPI(c *fiber.Ctx, db *sql.DB) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session id"})
	}
	if err := database.DeleteSession(db, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete session"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetRemarkAPI fetches the teacher remark for one student's term.
func GetRemarkAPI(c *fiber.Ctx, db *sql.DB) error {
	remark, err := database.GetTermRemark(db,
		c.Params("student_id"), c.Query("class"), c.Query("term"), c.Query("session"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Remark not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch remark"})
	}
	return c.JSON(remark)
}

type remarkRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Class     string `json:"class" validate:"required"`
	Term      string `json:"term" validate:"required"`
	Session   string `json:"session" validate:"required"`
	Remark    string `json:"remark" validate:"required"`
}

// SaveRemarkAPI writes or replaces the remark for a student's term.
func SaveRemarkAPI(c *fiber.Ctx, db *sql.DB) error {
	var req remarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	remark := &models.TermRemark{
		StudentID: req.StudentID,
		Class:     req.Class,
		Term:      req.Term,
		Session:   req.Session,
		Remark:    req.Remark,
	}
	if err := database.UpsertTermRemark(db, remark); err != nil {
		log.Printf("Error saving remark: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save remark"})
	}
	return c.JSON(fiber.Map{"success": true})
}
