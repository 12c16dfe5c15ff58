package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"zoincas/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	username := flag.String("username", "", "username to reset")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *username == "" || *password == "" {
		log.Fatal("--username and --password are required")
	}
	if len(*password) < 6 {
		log.Fatal("password too short (min 6)")
	}
	_ = godotenv.Load()
	dsn := os.Getenv("ZOINCAS_DATABASE_DSN")
	if dsn == "" {
		log.Fatal("ZOINCAS_DATABASE_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	var user models.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("user not found: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	if err := db.Model(&user).Update("hashed_password", hash).Error; err != nil {
		log.Fatalf("update failed: %v", err)
	}
	fmt.Printf("Password reset for user %s\n", user.Username)
}
