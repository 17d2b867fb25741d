package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists counters in the metrics table, alongside the league data.
// Counters survive restarts, unlike the process-local prometheus registry.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a database-backed MetricsStore.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment adds one to the named counter, creating it at one if missing.
// Failures are logged and swallowed: a lost count never fails a request.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment counter", "error", err, "key", key)
		return
	}
	log.Debug("Incremented counter", "key", key)
}

// GetAll returns every persisted counter keyed by name.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, nil
}
