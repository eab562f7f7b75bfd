package main

import (
	"log"
	"os"

	"github.com/femi-tobi/dandeb-schools/app/config"
	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/routes/auth"
	"github.com/femi-tobi/dandeb-schools/app/routes/reports"
	"github.com/femi-tobi/dandeb-schools/app/routes/results"
	"github.com/femi-tobi/dandeb-schools/app/routes/settings"
	"github.com/femi-tobi/dandeb-schools/app/routes/students"
	"github.com/femi-tobi/dandeb-schools/app/routes/teachers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

// errorHandler renders every unhandled error as a JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app, config.GetDB())

	// Setup students routes
	students.SetupStudentRoutes(app, config.GetDB())

	// Setup teachers routes
	teachers.SetupTeacherRoutes(app, config.GetDB())

	// Setup results routes
	results.SetupResultRoutes(app, config.GetDB())

	// Setup reports routes
	reports.SetupReportRoutes(app, config.GetDB())

	// Setup settings routes
	settings.SetupSettingsRoutes(app, config.GetDB())

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
