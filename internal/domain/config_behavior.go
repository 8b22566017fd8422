package domain

import (
	"strings"
	"time"
)

// HasToken reports whether a bot credential is configured.
func (c *Config) HasToken() bool {
	return strings.TrimSpace(c.Bot.Token) != ""
}

// GetAPIBaseURL returns the Bot API base URL without a trailing slash.
func (c *Config) GetAPIBaseURL() string {
	if c.Bot.APIBaseURL == "" {
		return DefaultAPIBaseURL
	}
	return strings.TrimRight(c.Bot.APIBaseURL, "/")
}

// GetMode returns the transport mode, webhook by default.
func (c *Config) GetMode() string {
	if c.Bot.Mode == "" {
		return ModeWebhook
	}
	return strings.ToLower(c.Bot.Mode)
}

// GetPollTimeout returns the long-poll timeout used with getUpdates.
func (c *Config) GetPollTimeout() time.Duration {
	if c.Bot.PollTimeoutSeconds <= 0 {
		return DefaultPollTimeout
	}
	return time.Duration(c.Bot.PollTimeoutSeconds) * time.Second
}

// GetPort returns the webhook listening port.
func (c *Config) GetPort() int {
	if c.Server.Port <= 0 {
		return DefaultPort
	}
	return c.Server.Port
}

// GetWebhookPath returns the webhook route, always slash-prefixed.
func (c *Config) GetWebhookPath() string {
	path := strings.TrimSpace(c.Server.WebhookPath)
	if path == "" {
		return DefaultWebhookPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (c *Config) GetReadHeaderTimeout() time.Duration {
	if c.Server.ReadHeaderTimeoutSeconds <= 0 {
		return DefaultReadHeaderTimeout
	}
	return time.Duration(c.Server.ReadHeaderTimeoutSeconds) * time.Second
}

func (c *Config) GetShutdownTimeout() time.Duration {
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return DefaultShutdownTimeout
	}
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// GetSessionTTL returns how long a pending mine count survives. A negative
// configured value disables expiry.
func (c *Config) GetSessionTTL() time.Duration {
	switch {
	case c.Session.TTLSeconds < 0:
		return 0
	case c.Session.TTLSeconds == 0:
		return DefaultSessionTTL
	default:
		return time.Duration(c.Session.TTLSeconds) * time.Second
	}
}

// GetSampler returns the configured sampling strategy, shuffle by default.
func (c *Config) GetSampler() string {
	if c.Prediction.Sampler == "" {
		return SamplerShuffle
	}
	return strings.ToLower(c.Prediction.Sampler)
}

// GetHistoryBackend returns the configured history backend, memory by default.
func (c *Config) GetHistoryBackend() string {
	if c.History.Backend == "" {
		return HistoryBackendMemory
	}
	return strings.ToLower(c.History.Backend)
}

// GetHistoryMaxEntries returns the history bound; zero means unbounded.
func (c *Config) GetHistoryMaxEntries() int {
	if c.History.MaxEntries < 0 {
		return 0
	}
	return c.History.MaxEntries
}

func (c *Config) GetLogLevel() string {
	if c.Logging.Level == "" {
		return DefaultLogLevel
	}
	return strings.ToLower(c.Logging.Level)
}

func (c *Config) GetLogFormat() string {
	if c.Logging.Format == "" {
		return DefaultLogFormat
	}
	return strings.ToLower(c.Logging.Format)
}

// IsTelemetryEnabled reports whether traces should be exported: an
// endpoint is set and tracing was not switched off.
func (c *Config) IsTelemetryEnabled() bool {
	return !c.Telemetry.Disabled && strings.TrimSpace(c.Telemetry.Endpoint) != ""
}
