package domain

import (
	"encoding/json"
	"time"
)

// PredictionRecord captures one produced prediction. Records are appended
// to the history log once and never mutated.
type PredictionRecord struct {
	ID            string      `json:"id"`
	CreatedAt     time.Time   `json:"createdAt"`
	ChatID        int64       `json:"chatId,omitempty"`
	Seed          string      `json:"seed"`
	MineCount     MineCount   `json:"mineCount"`
	MinePositions PositionSet `json:"minePositions"`
	SafePositions PositionSet `json:"safePositions"`
}

// Grid renders the record's position sets.
func (r PredictionRecord) Grid() Grid {
	return Render(r.MinePositions, r.SafePositions)
}

// HistoryEcho is the part of a record shown back to the user. Seed, chat
// and timestamps stay server-side.
type HistoryEcho struct {
	MinePositions PositionSet `json:"minePositions"`
	SafePositions PositionSet `json:"safePositions"`
}

// Echo returns the user-visible projection of r.
func (r PredictionRecord) Echo() HistoryEcho {
	return HistoryEcho{MinePositions: r.MinePositions, SafePositions: r.SafePositions}
}

// EchoText is the structured reply that echoes a history entry back to
// the user.
func (r PredictionRecord) EchoText() (string, error) {
	raw, err := json.Marshal(r.Echo())
	if err != nil {
		return "", err
	}
	return HistoryEchoPrefix + string(raw), nil
}
