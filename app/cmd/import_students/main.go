package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/femi-tobi/dandeb-schools/app/config"
	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/femi-tobi/dandeb-schools/app/models"
	"github.com/joho/godotenv"
)

type rosterEntry struct {
	StudentID string `json:"student_id"`
	FullName  string `json:"fullname"`
	Class     string `json:"class"`
	Password  string `json:"password"`
}

// generateStudentID builds a class-prefixed id like JSS1-4821 for roster
// entries that come without one.
func generateStudentID(class string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(class, " ", ""))
	if prefix == "" {
		prefix = "STU"
	}
	return fmt.Sprintf("%s-%04d", prefix, rand.Intn(10000))
}

func main() {
	file := flag.String("file", "students.json", "roster JSON file")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	var roster []rosterEntry
	if err := json.Unmarshal(data, &roster); err != nil {
		fmt.Printf("Error parsing roster: %v\n", err)
		os.Exit(1)
	}

	godotenv.Load()
	config.InitDB()
	defer config.GetDB().Close()
	db := config.GetDB()

	created := 0
	for _, entry := range roster {
		if entry.FullName == "" || entry.Class == "" {
			fmt.Printf("Skipping entry with missing fullname or class: %+v\n", entry)
			continue
		}
		if entry.StudentID == "" {
			entry.StudentID = generateStudentID(entry.Class)
		}
		if entry.Password == "" {
			entry.Password = entry.StudentID
		}

		student := &models.Student{
			StudentID: entry.StudentID,
			FullName:  entry.FullName,
			Class:     entry.Class,
		}
		if err := database.CreateStudent(db, student, entry.Password); err != nil {
			fmt.Printf("Error creating %s (%s): %v\n", entry.FullName, entry.StudentID, err)
			continue
		}
		created++
		fmt.Printf("Created %s (%s) in %s\n", entry.FullName, entry.StudentID, entry.Class)
	}
	fmt.Printf("Imported %d of %d students\n", created, len(roster))
}
