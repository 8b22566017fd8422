package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/doeshing/minebot/internal/domain"
)

// newestFirst copies up to limit records from an oldest-first slice in
// reverse order.
func newestFirst(records []domain.PredictionRecord, limit int) []domain.PredictionRecord {
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.PredictionRecord, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out
}

func encodeJSONL(records []domain.PredictionRecord) ([]byte, error) {
	var buf bytes.Buffer
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func writeJSONL(dest string, records []domain.PredictionRecord) error {
	data, err := encodeJSONL(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return err
		}
	}
	return os.WriteFile(dest, data, domain.SecureFilePermissions)
}
