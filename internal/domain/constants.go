package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Transport modes
const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

// Sampler strategies
const (
	SamplerShuffle   = "shuffle"
	SamplerRejection = "rejection"
)

// History backends
const (
	HistoryBackendMemory = "memory"
	HistoryBackendFile   = "file"
	HistoryBackendSQLite = "sqlite"
)

// Defaults
const (
	DefaultAPIBaseURL         = "https://api.telegram.org"
	DefaultPort               = 3000
	DefaultWebhookPath        = "/webhook"
	DefaultPollTimeout        = 30 * time.Second
	DefaultReadHeaderTimeout  = 10 * time.Second
	DefaultShutdownTimeout    = 5 * time.Second
	DefaultSessionTTL         = 10 * time.Minute
	DefaultHTTPClientTimeout  = 60 * time.Second
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultHistoryLimit       = 20
	MaxHistoryAnalysisRecords = 1000
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
