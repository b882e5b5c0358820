// Package database provides schema creation and initial seeding
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shinescript/shinescript-go/internal/infrastructure/security"
)

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the starter bootcamp catalog on first boot.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM bootcamps").Scan(&count); err != nil {
		return fmt.Errorf("failed to check bootcamp count: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, seed := range seedBootcamps {
		id := security.GenerateULID()
		_, err := db.Exec(`INSERT INTO bootcamps (id, name, duration, image_url, options_payload, created, changed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, seed.name, seed.duration, seed.image, seed.options, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert seed bootcamp %q: %w", seed.name, err)
		}
	}
	return nil
}

type seedBootcamp struct {
	name     string
	duration string
	image    string
	options  string
}

var seedBootcamps = []seedBootcamp{
	{
		name:     "Desarrollo Web Full Stack",
		duration: "12 semanas",
		image:    "https://images.shinescript.dev/bootcamps/fullstack.jpg",
		options:  `{"difficulty":"Intermedio","category":"Desarrollo Web","price":"$1,499","certification":true,"instructor":"Soluciones Informáticas K&D"}`,
	},
	{
		name:     "Kotlin Mobile",
		duration: "8 semanas",
		image:    "https://images.shinescript.dev/bootcamps/kotlin.jpg",
		options:  `{"difficulty":"Intermedio","category":"Mobile","price":"$1,199","certification":true}`,
	},
	{
		name:     "Data Science",
		duration: "6 meses",
		image:    "https://images.shinescript.dev/bootcamps/datascience.jpg",
		options:  `{"difficulty":"Avanzado","category":"Data Science","price":"$1,899","certification":true}`,
	},
	{
		name:     "React desde Cero",
		duration: "40 horas",
		image:    "https://images.shinescript.dev/bootcamps/react.jpg",
		options:  `{"difficulty":"Principiante","category":"Desarrollo Web","price":"$699","certification":false}`,
	},
	{
		name:     "DevOps con Kubernetes",
		duration: "10 semanas",
		image:    "https://images.shinescript.dev/bootcamps/devops.jpg",
		options:  `{"difficulty":"Avanzado","category":"DevOps","price":"$1,599","certification":true}`,
	},
	{
		name:     "Python para Data Science",
		duration: "3 meses",
		image:    "https://images.shinescript.dev/bootcamps/python.jpg",
		options:  `{"difficulty":"Principiante","category":"Data Science","price":"$999","certification":true}`,
	},
	{
		name:     "Flutter Multiplataforma",
		duration: "60 horas",
		image:    "https://images.shinescript.dev/bootcamps/flutter.jpg",
		options:  `{"category":"Mobile","price":"$899","certification":false}`,
	},
	{
		name:     "Backend con Go",
		duration: "9 semanas",
		image:    "https://images.shinescript.dev/bootcamps/golang.jpg",
		options:  `{"difficulty":"Intermedio","category":"Desarrollo Web","price":"$1,299","certification":true}`,
	},
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS accounts (id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE, display_name TEXT NOT NULL, password_hash TEXT NOT NULL, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS bootcamps (id TEXT PRIMARY KEY, name TEXT NOT NULL, duration TEXT NOT NULL, image_url TEXT, options_payload TEXT NOT NULL DEFAULT '{}', created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS favorites (id TEXT PRIMARY KEY, account_id TEXT NOT NULL REFERENCES accounts(id), bootcamp_id TEXT NOT NULL REFERENCES bootcamps(id), created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, UNIQUE(account_id, bootcamp_id))`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email)`,
	`CREATE INDEX IF NOT EXISTS idx_bootcamps_name ON bootcamps(name)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_account_id ON favorites(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_bootcamp_id ON favorites(bootcamp_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_unique ON favorites(account_id, bootcamp_id)`,
}
