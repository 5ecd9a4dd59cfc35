// Package sqlite implementa plants.Repository sobre un archivo SQLite,
// para deployments de un solo binario sin Postgres.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // driver SQLite puro Go (sin CGO)
)

const schema = `
CREATE TABLE IF NOT EXISTS plants (
    id TEXT PRIMARY KEY,
    owner_user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    nickname TEXT NOT NULL DEFAULT '',
    species TEXT NOT NULL DEFAULT '',
    pot_size TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    sunlight TEXT NOT NULL DEFAULT '',
    humidity_needs TEXT NOT NULL DEFAULT '',
    soil_type TEXT NOT NULL DEFAULT '',
    fertilizer_type TEXT NOT NULL DEFAULT '',
    origin TEXT NOT NULL DEFAULT '',
    height REAL,
    water_cycle INTEGER,
    last_watered TEXT,
    last_repotted TEXT,
    reference_links TEXT,
    notes TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    is_favorite INTEGER NOT NULL DEFAULT 0,
    is_dead INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plants_owner ON plants(owner_user_id);
`

// Open abre (o crea) la base, crea el directorio padre si falta y corre la
// migración del esquema.
func Open(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
