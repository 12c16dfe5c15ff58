package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"zoincas/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/create_user <username> <email> <password>")
		os.Exit(2)
	}
	username := os.Args[1]
	email := os.Args[2]
	password := os.Args[3]

	_ = godotenv.Load()
	dsn := os.Getenv("ZOINCAS_DATABASE_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("ZOINCAS_DATABASE_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	// check existing
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%s)\n", username, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Username: username, Email: email, HashedPassword: hpw}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%s\n", username, user.ID)
}
