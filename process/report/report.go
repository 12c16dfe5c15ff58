package report

import (
	"fmt"
	"log"
	"os"
	"time"

	"zoincas/models"
	"zoincas/pkg/money"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("ZOINCAS_DATABASE_DSN")
	if dsn == "" {
		log.Fatal("ZOINCAS_DATABASE_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// RunReport prints a month-bounded income/expense report for username
// (month in YYYY-MM) and optionally lists the matching transactions.
func RunReport(username, month string, list bool) {
	gdb := mustDBFromEnv()

	var user models.User
	if err := gdb.Where("username = ?", username).First(&user).Error; err != nil {
		log.Fatalf("user not found: %v", err)
	}

	t, err := time.Parse("2006-01", month)
	if err != nil {
		log.Fatalf("invalid month format, expected YYYY-MM: %v", err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var row struct {
		Income  int64
		Expense int64
		Cnt     int64
	}
	err = gdb.Raw(`SELECT
		COALESCE(SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END), 0) AS income,
		COALESCE(SUM(CASE WHEN t.amount < 0 THEN t.amount ELSE 0 END), 0) AS expense,
		COUNT(*) AS cnt
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = ? AND t.datetime >= ? AND t.datetime < ?`,
		user.ID, start, end).Scan(&row).Error
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Printf("Report for user=%s month=%s (UTC):\n", user.Username, month)
	fmt.Printf("  records=%d income=%.2f expense=%.2f net=%.2f\n",
		row.Cnt,
		money.FromMiliunits(row.Income),
		money.FromMiliunits(row.Expense),
		money.FromMiliunits(row.Income+row.Expense))

	if list {
		var rows []models.Transaction
		err := gdb.
			Joins("JOIN accounts ON accounts.id = transactions.account_id").
			Where("accounts.user_id = ? AND transactions.datetime >= ? AND transactions.datetime < ?", user.ID, start, end).
			Order("transactions.datetime").
			Find(&rows).Error
		if err != nil {
			log.Fatalf("fetch rows failed: %v", err)
		}
		for _, r := range rows {
			fmt.Printf("%s|%s|%.2f|%s\n", r.ID, r.Description, money.FromMiliunits(r.Amount), r.Datetime.Format(time.RFC3339))
		}
	}
}
