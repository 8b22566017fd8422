// Package history provides the prediction history log backends.
package history

import (
	"sync"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// MemoryStore keeps history in process memory. With maxEntries > 0 the
// oldest records are dropped once the bound is reached.
type MemoryStore struct {
	mu         sync.Mutex
	records    []domain.PredictionRecord
	maxEntries int
}

// NewMemoryStore returns an empty store. maxEntries <= 0 means unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{maxEntries: maxEntries}
}

// Append implements ports.HistoryStore.
func (m *MemoryStore) Append(record domain.PredictionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxEntries > 0 && len(m.records) >= m.maxEntries {
		m.records = m.records[len(m.records)-m.maxEntries+1:]
	}
	m.records = append(m.records, record)
	return nil
}

// Last implements ports.HistoryStore.
func (m *MemoryStore) Last() (domain.PredictionRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) == 0 {
		return domain.PredictionRecord{}, false, nil
	}
	return m.records[len(m.records)-1], true, nil
}

// Len implements ports.HistoryStore.
func (m *MemoryStore) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

// Records returns up to limit records, most recent first.
func (m *MemoryStore) Records(limit int) ([]domain.PredictionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newestFirst(m.records, limit), nil
}

// Clear drops every record.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

// ExportJSON writes the log to dest as jsonl, oldest first.
func (m *MemoryStore) ExportJSON(dest string) error {
	m.mu.Lock()
	records := append([]domain.PredictionRecord(nil), m.records...)
	m.mu.Unlock()
	return writeJSONL(dest, records)
}

// Path reports the backend name since there is no file behind it.
func (m *MemoryStore) Path() string {
	return domain.HistoryBackendMemory
}

var _ ports.HistoryRepository = (*MemoryStore)(nil)
