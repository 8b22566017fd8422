// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The prediction engine and the session flow
// controller depend only on these abstractions, so they can be exercised
// without a live chat transport, database or configuration file.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Sampler, HistoryRepository)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/minebot/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.minebot/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Sampler draws count distinct positions uniformly from [0, bound).
type Sampler interface {
	Sample(count, bound int) (domain.PositionSet, error)
}

// HistoryStore is the append-only log of produced predictions.
type HistoryStore interface {
	Append(record domain.PredictionRecord) error
	Last() (domain.PredictionRecord, bool, error)
	Len() (int, error)
}

// HistoryRepository extends HistoryStore with the operator-facing
// inspection and maintenance operations used by the CLI.
type HistoryRepository interface {
	HistoryStore
	// Records returns up to limit records, most recent first. A
	// non-positive limit returns everything.
	Records(limit int) ([]domain.PredictionRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// SessionStore maps a conversation to its pending state.
type SessionStore interface {
	Put(key domain.SessionKey, state domain.SessionState)
	// Take returns and removes the state in one step, so one pending mine
	// count is consumed by exactly one message.
	Take(key domain.SessionKey) (domain.SessionState, bool)
	Peek(key domain.SessionKey) (domain.SessionState, bool)
}

// Messenger delivers a text reply to a chat. Delivery is fire-and-forget
// from the caller's point of view: errors are reported, never retried.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Clock abstracts time so expiry and timestamps are testable.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints identifiers for history records.
type IDGenerator interface {
	NewID() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
