package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDatabase opens the Postgres connection pool.
func InitDatabase(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")
	return nil
}

// CreateTables creates the catalog schema if it does not exist.
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS perfumes (
			id SERIAL PRIMARY KEY,
			article VARCHAR(50) NOT NULL UNIQUE,
			unique_key VARCHAR(255) NOT NULL UNIQUE,
			brand VARCHAR(100) NOT NULL,
			name VARCHAR(200) NOT NULL,
			full_title TEXT NOT NULL,
			factory VARCHAR(100),
			factory_detailed VARCHAR(100),
			price DECIMAL(10,2),
			price_formatted VARCHAR(50),
			currency VARCHAR(10) DEFAULT 'RUB',
			gender VARCHAR(20),
			fragrance_group TEXT,
			quality_level VARCHAR(50),
			url VARCHAR(500) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			is_active BOOLEAN DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS parse_runs (
			id SERIAL PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP,
			pages INTEGER DEFAULT 0,
			listings INTEGER DEFAULT 0,
			duplicates INTEGER DEFAULT 0,
			fetched INTEGER DEFAULT 0,
			skipped INTEGER DEFAULT 0,
			upserted INTEGER DEFAULT 0,
			created INTEGER DEFAULT 0,
			failed INTEGER DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_perfumes_article ON perfumes (article)`,
		`CREATE INDEX IF NOT EXISTS idx_perfumes_brand ON perfumes (brand)`,
		`CREATE INDEX IF NOT EXISTS idx_perfumes_active ON perfumes (is_active)`,
	}

	for _, query := range queries {
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the connection pool.
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
