package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	jwtSecret []byte // loaded from config (fallback to dev default)
	tokenTTL  time.Duration
)

func main() {
	// Load ./.env if present before viper reads the environment.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)
	tokenTTL = time.Duration(cfg.JWT.ExpireHours) * time.Hour

	// Support a lightweight migrate command: `./zoincas migrate`
	// It runs AutoMigrate then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		fmt.Println("migration completed")
		return
	}

	initDB(cfg)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.Default()

	setupRoutes(r)

	r.Run(cfg.Server.Addr)
}
