// Command migrate applies the feedback schema once against the database
// described by DATABASE_URL or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME.
package main

import (
	"log"

	"feedback-backend/internal/config"
	"feedback-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadDatabase()

	db, err := database.OpenPostgres(cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migration complete.")
}
