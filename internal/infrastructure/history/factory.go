package history

import (
	"fmt"
	"path/filepath"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/pkg/filesystem"
	"github.com/doeshing/minebot/internal/ports"
)

// New builds the backend selected in cfg.History.
func New(cfg domain.Config) (ports.HistoryRepository, error) {
	limit := cfg.GetHistoryMaxEntries()
	switch cfg.GetHistoryBackend() {
	case domain.HistoryBackendMemory:
		return NewMemoryStore(limit), nil
	case domain.HistoryBackendFile:
		return NewFileStore(resolvePath(cfg.History.Path, "history.jsonl"), limit), nil
	case domain.HistoryBackendSQLite:
		store, err := NewSQLiteStore(resolvePath(cfg.History.Path, "history.db"), limit)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

func resolvePath(configured, name string) string {
	if configured != "" {
		return filesystem.ExpandPath(configured)
	}
	return filepath.Join(filesystem.DataDir(), "history", name)
}
