package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Indexes gorm AutoMigrate does not manage. The unique pair index on
	// requests backs the one-request-per-event rule at the storage level.
	log.Println("Executing migration...")
	migrationSQL := `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_event_requester
			ON requests (event_id, requester_id);

		CREATE INDEX IF NOT EXISTS idx_requests_event_status
			ON requests (event_id, status);

		CREATE INDEX IF NOT EXISTS idx_events_state_event_date
			ON events (state, event_date);

		CREATE INDEX IF NOT EXISTS idx_events_initiator
			ON events (initiator_id);

		CREATE INDEX IF NOT EXISTS idx_comments_event
			ON comments (event_id);
	`
	if _, err = db.Exec(migrationSQL); err != nil {
		log.Fatalf("Failed to execute migration: %v", err)
	}

	log.Println("✅ Migration completed successfully!")
}
