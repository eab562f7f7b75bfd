package main

import (
	"fmt"
	"os"

	"github.com/femi-tobi/dandeb-schools/app/config"
	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied")
}
