package domain

// Config mirrors ~/.minebot/config.yaml. Fields tagged with env are
// overridden from the environment after the file is read.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Bot                 BotSettings        `yaml:"bot"`
	Server              ServerSettings     `yaml:"server"`
	Session             SessionSettings    `yaml:"session"`
	Prediction          PredictionSettings `yaml:"prediction"`
	History             HistorySettings    `yaml:"history"`
	Display             Glyphs             `yaml:"display"`
	Logging             LoggingSettings    `yaml:"logging"`
	Telemetry           TelemetrySettings  `yaml:"telemetry"`
}

// BotSettings configures the chat transport.
type BotSettings struct {
	Token              string `yaml:"token" env:"BOT_TOKEN"`
	APIBaseURL         string `yaml:"api_base_url" env:"MINEBOT_API_BASE_URL"`
	Mode               string `yaml:"mode" env:"MINEBOT_MODE"`
	PollTimeoutSeconds int    `yaml:"poll_timeout" env:"MINEBOT_POLL_TIMEOUT"`
}

// ServerSettings configures the webhook HTTP listener.
type ServerSettings struct {
	Port                     int    `yaml:"port" env:"PORT"`
	WebhookPath              string `yaml:"webhook_path" env:"MINEBOT_WEBHOOK_PATH"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout"`
	ShutdownTimeoutSeconds   int    `yaml:"shutdown_timeout"`
}

// SessionSettings bounds how long a conversation may wait for a seed.
type SessionSettings struct {
	TTLSeconds int `yaml:"ttl" env:"MINEBOT_SESSION_TTL"`
}

// PredictionSettings selects the sampling strategy.
type PredictionSettings struct {
	Sampler string `yaml:"sampler" env:"MINEBOT_SAMPLER"`
}

// HistorySettings selects where prediction history lives.
type HistorySettings struct {
	Backend    string `yaml:"backend" env:"MINEBOT_HISTORY_BACKEND"`
	Path       string `yaml:"path" env:"MINEBOT_HISTORY_PATH"`
	MaxEntries int    `yaml:"max_entries" env:"MINEBOT_HISTORY_MAX_ENTRIES"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level  string `yaml:"level" env:"MINEBOT_LOG_LEVEL"`
	Format string `yaml:"format" env:"MINEBOT_LOG_FORMAT"`
}

// TelemetrySettings configures optional OpenTelemetry tracing.
type TelemetrySettings struct {
	Endpoint string `yaml:"endpoint" env:"MINEBOT_OTEL_ENDPOINT"`
	Disabled bool   `yaml:"disabled" env:"MINEBOT_OTEL_DISABLED"`
}
