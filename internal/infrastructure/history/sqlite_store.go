package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db         *sql.DB
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, maxEntries int) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path, maxEntries: maxEntries}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS predictions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		created_at TEXT,
		chat_id INTEGER,
		seed TEXT,
		mine_count INTEGER,
		mine_positions TEXT,
		safe_positions TEXT
	);`)
	return err
}

// Append implements ports.HistoryStore.
func (s *SQLiteStore) Append(record domain.PredictionRecord) error {
	mines, err := json.Marshal(record.MinePositions)
	if err != nil {
		return err
	}
	safe, err := json.Marshal(record.SafePositions)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO predictions
		(id, created_at, chat_id, seed, mine_count, mine_positions, safe_positions)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.CreatedAt.Format(time.RFC3339Nano),
		record.ChatID,
		record.Seed,
		int(record.MineCount),
		string(mines),
		string(safe),
	)
	if err != nil {
		return err
	}
	if s.maxEntries > 0 {
		_, err = s.db.Exec("DELETE FROM predictions WHERE seq <= (SELECT MAX(seq) FROM predictions) - ?", s.maxEntries)
	}
	return err
}

// Last implements ports.HistoryStore.
func (s *SQLiteStore) Last() (domain.PredictionRecord, bool, error) {
	records, err := s.Records(1)
	if err != nil || len(records) == 0 {
		return domain.PredictionRecord{}, false, err
	}
	return records[0], true, nil
}

// Len implements ports.HistoryStore.
func (s *SQLiteStore) Len() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM predictions").Scan(&n)
	return n, err
}

// Records returns history entries, most recent first.
func (s *SQLiteStore) Records(limit int) ([]domain.PredictionRecord, error) {
	query := "SELECT id, created_at, chat_id, seed, mine_count, mine_positions, safe_positions FROM predictions ORDER BY seq DESC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PredictionRecord
	for rows.Next() {
		var rec domain.PredictionRecord
		var ts, mines, safe string
		var count int
		if err := rows.Scan(&rec.ID, &ts, &rec.ChatID, &rec.Seed, &count, &mines, &safe); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.CreatedAt = t
		}
		rec.MineCount = domain.MineCount(count)
		if err := json.Unmarshal([]byte(mines), &rec.MinePositions); err != nil {
			return nil, fmt.Errorf("decode mine positions for %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(safe), &rec.SafePositions); err != nil {
			return nil, fmt.Errorf("decode safe positions for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM predictions")
	return err
}

// ExportJSON writes the predictions table to a jsonl file, oldest first.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0)
	if err != nil {
		return err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
