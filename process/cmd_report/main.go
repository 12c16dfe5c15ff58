package main

import (
	"flag"
	"fmt"
	"os"

	"zoincas/process/report"

	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "", "username to report for")
	month := flag.String("month", "2026-08", "month to report (YYYY-MM)")
	list := flag.Bool("list", false, "list matching transactions")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "--username is required")
		os.Exit(2)
	}

	_ = godotenv.Load()
	if os.Getenv("ZOINCAS_DATABASE_DSN") == "" {
		fmt.Fprintln(os.Stderr, "ZOINCAS_DATABASE_DSN not set; export it and retry")
		os.Exit(2)
	}

	report.RunReport(*username, *month, *list)
}
