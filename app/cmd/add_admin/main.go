package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/femi-tobi/dandeb-schools/app/config"
	"github.com/femi-tobi/dandeb-schools/app/database"
	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_admin -email admin@school.com -password secret")
		os.Exit(1)
	}

	godotenv.Load()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.CreateAdmin(config.GetDB(), *email, *password); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin created successfully: %s\n", *email)
}
