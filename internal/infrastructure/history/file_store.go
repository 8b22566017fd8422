package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// FileStore appends history records to a jsonl file.
type FileStore struct {
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewFileStore creates a store backed by path. maxEntries <= 0 means
// unbounded; otherwise the file is compacted to the newest maxEntries
// lines after each append that exceeds it.
func NewFileStore(path string, maxEntries int) *FileStore {
	return &FileStore{path: path, maxEntries: maxEntries}
}

// Append implements ports.HistoryStore.
func (f *FileStore) Append(record domain.PredictionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		file.Close()
		return err
	}
	data = append(data, '\n')
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if f.maxEntries > 0 {
		return f.compact()
	}
	return nil
}

func (f *FileStore) compact() error {
	records, err := f.load()
	if err != nil {
		return err
	}
	if len(records) <= f.maxEntries {
		return nil
	}
	return writeJSONL(f.path, records[len(records)-f.maxEntries:])
}

// Last implements ports.HistoryStore.
func (f *FileStore) Last() (domain.PredictionRecord, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.load()
	if err != nil || len(records) == 0 {
		return domain.PredictionRecord{}, false, err
	}
	return records[len(records)-1], true, nil
}

// Len implements ports.HistoryStore.
func (f *FileStore) Len() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.load()
	return len(records), err
}

// Records loads history entries, most recent first (best-effort).
func (f *FileStore) Records(limit int) ([]domain.PredictionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(records, limit), nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExportJSON copies the history file to dest.
func (f *FileStore) ExportJSON(dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.load()
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// load reads all records oldest first, skipping lines that fail to decode.
func (f *FileStore) load() ([]domain.PredictionRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.PredictionRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.PredictionRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
