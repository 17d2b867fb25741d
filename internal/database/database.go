package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and ensures the schema is up to date.
// For local-only databases, dbPath is the filename (":memory:" for tests).
// When primaryURL is set, the remote Turso database is used instead.
func InitDB(dbPath string, primaryURL string, authToken string) (*sql.DB, func(), error) {
	dsn := "file:" + dbPath
	if primaryURL != "" {
		log.Info("Initializing Turso database", "url", primaryURL)
		dsn = primaryURL + "?authToken=" + authToken
	} else {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = createTables(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create tables: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func createTables(db *sql.DB) error {
	// Foreign key support is not enabled by default in SQLite
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Error("Error enabling foreign keys:", "error", err)
		return err
	}

	createPlayersTable := `
    CREATE TABLE IF NOT EXISTS players (
        id TEXT PRIMARY KEY,
        first_name TEXT NOT NULL DEFAULT '',
        last_name TEXT NOT NULL DEFAULT ''
    );`

	createMembershipsTable := `
    CREATE TABLE IF NOT EXISTS memberships (
        player_id TEXT PRIMARY KEY,
        box_id TEXT NOT NULL,
        box_name TEXT NOT NULL DEFAULT '',
        season_id TEXT NOT NULL,
        next_box_status TEXT NOT NULL DEFAULT '',
        FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
    );`

	createSeasonsTable := `
    CREATE TABLE IF NOT EXISTS seasons (
        id TEXT PRIMARY KEY,
        start_date INTEGER NOT NULL,
        end_date INTEGER NOT NULL,
        status TEXT NOT NULL DEFAULT 'upcoming'
    );`

	createMatchesTable := `
    CREATE TABLE IF NOT EXISTS matches (
        id TEXT PRIMARY KEY,
        box_id TEXT NOT NULL,
        season_id TEXT NOT NULL,
        player_a_id TEXT NOT NULL,
        player_b_id TEXT NOT NULL,
        score_a INTEGER,
        score_b INTEGER,
        scheduled_at INTEGER,
        played_at INTEGER,
        no_show_player_id TEXT,
        retired_player_id TEXT,
        delayed_player_id TEXT,
        delayed_requested_by TEXT,
        delayed_status TEXT,
        delayed_requested_at INTEGER,
        delayed_resolved_at INTEGER,
        FOREIGN KEY (player_a_id) REFERENCES players(id),
        FOREIGN KEY (player_b_id) REFERENCES players(id)
    );`

	createMetricsTable := `
	CREATE TABLE IF NOT EXISTS metrics (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0
	);`

	for _, stmt := range []string{
		createPlayersTable,
		createMembershipsTable,
		createSeasonsTable,
		createMatchesTable,
		createMetricsTable,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Info("Database initialized successfully")
	return nil
}
