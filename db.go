package main

import (
	"log"

	"zoincas/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(cfg *Config) {
	dsn := cfg.Database.DSN
	if dsn == "" {
		log.Fatal("database DSN is not set. Provide ZOINCAS_DATABASE_DSN or database.dsn in config.yaml.")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}

	if !cfg.Database.AutoMigrate {
		return
	}

	// Migrate models individually so a failure on one doesn't block others.
	// Parents first so child FKs can be applied safely.
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Printf("migration warning (users): %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		log.Printf("migration warning (accounts): %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		log.Printf("migration warning (categories): %v", err)
	}
	if err := db.AutoMigrate(&models.ShoppingPlan{}); err != nil {
		log.Printf("migration warning (shopping_plans): %v", err)
	}
	if err := db.AutoMigrate(&models.ShoppingItem{}); err != nil {
		log.Printf("migration warning (shopping_items): %v", err)
	}
	if err := db.AutoMigrate(&models.BudgetPlan{}); err != nil {
		log.Printf("migration warning (budget_plans): %v", err)
	}
	if err := db.AutoMigrate(&models.BudgetCategory{}); err != nil {
		log.Printf("migration warning (budget_categories): %v", err)
	}
	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		log.Printf("migration warning (transactions): %v", err)
	}
}
