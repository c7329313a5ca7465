package trackers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	agent       TEXT NOT NULL,
	config      TEXT NOT NULL,
	started_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS episodes (
	run_id      TEXT NOT NULL,
	episode     INTEGER NOT NULL,
	ep_return   REAL NOT NULL,
	epsilon     REAL NOT NULL,
	mean_value  REAL NOT NULL,
	steps       INTEGER NOT NULL,
	PRIMARY KEY (run_id, episode),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// SQLite stores the Records of a run in a SQLite database. Each run
// is identified by a random UUID, so runs of different agents can
// share a single database.
type SQLite struct {
	db    *sql.DB
	runID string
	every int
}

// NewSQLite opens or creates the database at dbPath and registers a
// new run of the argument agent type and configuration, which is
// stored verbatim. Episodes whose index is a multiple of every are
// stored.
func NewSQLite(dbPath, agentType, config string, every int) (*SQLite, error) {
	if every < 1 {
		return nil, fmt.Errorf("newSQLite: interval %v must be positive",
			every)
	}

	// Pragmas in the DSN apply to every pooled connection
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("newSQLite: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("newSQLite: migrate: %w", err)
	}

	runID := uuid.New().String()
	_, err = db.Exec(
		`INSERT INTO runs (run_id, agent, config, started_at)
		 VALUES (?, ?, ?, ?)`,
		runID, agentType, config, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("newSQLite: insert run: %w", err)
	}

	return &SQLite{db: db, runID: runID, every: every}, nil
}

// RunID returns the identifier of the tracked run
func (s *SQLite) RunID() string {
	return s.runID
}

// Track stores r if r.Episode is a multiple of the tracker's interval
func (s *SQLite) Track(r Record) error {
	if r.Episode%s.every != 0 {
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO episodes (run_id, episode, ep_return, epsilon, mean_value, steps)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, r.Episode, r.Return, r.Epsilon, r.MeanValue, r.Steps,
	)
	if err != nil {
		return fmt.Errorf("track: insert episode: %w", err)
	}
	return nil
}

// Records returns the stored Records of the tracked run in episode
// order
func (s *SQLite) Records() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT episode, ep_return, epsilon, mean_value, steps FROM episodes
		 WHERE run_id = ? ORDER BY episode`,
		s.runID,
	)
	if err != nil {
		return nil, fmt.Errorf("records: query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		err := rows.Scan(&r.Episode, &r.Return, &r.Epsilon, &r.MeanValue,
			&r.Steps)
		if err != nil {
			return nil, fmt.Errorf("records: scan: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save closes the database
func (s *SQLite) Save() error {
	return s.db.Close()
}
