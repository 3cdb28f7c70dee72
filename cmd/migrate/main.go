// Command migrate prepares the database out of band: it creates the
// pgvector extension with superuser credentials, then runs the same
// schema migration the API server runs on boot. Deployments where the
// API user lacks CREATE EXTENSION run this first.
package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/leftovercook/backend/config"
	"github.com/leftovercook/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	raw, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer raw.Close()

	if err := raw.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	if _, err := raw.Exec("CREATE EXTENSION IF NOT EXISTS vector;"); err != nil {
		log.Fatalf("failed to create vector extension: %v", err)
	}
	log.Println("pgvector extension ready")

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to open gorm connection: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	log.Println("schema migration complete")
}
