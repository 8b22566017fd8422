package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/minebot/internal/domain"
)

// Validate ensures config structure is consistent. requireToken is set by
// commands that talk to the Bot API.
func Validate(cfg domain.Config, requireToken bool) error {
	if requireToken && !cfg.HasToken() {
		return fmt.Errorf("%w: set BOT_TOKEN or bot.token", domain.ErrMissingToken)
	}
	var errs []error
	errs = append(errs, validateBot(cfg))
	errs = append(errs, validateServer(cfg.Server))
	errs = append(errs, validatePrediction(cfg))
	errs = append(errs, validateHistory(cfg))
	errs = append(errs, validateLogging(cfg))
	return errors.Join(errs...)
}

func validateBot(cfg domain.Config) error {
	switch cfg.GetMode() {
	case domain.ModeWebhook, domain.ModePolling:
	default:
		return fmt.Errorf("bot.mode must be webhook|polling, got %s", cfg.Bot.Mode)
	}
	if cfg.Bot.APIBaseURL != "" {
		u, err := url.Parse(cfg.Bot.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("bot.api_base_url must be an absolute URL, got %q", cfg.Bot.APIBaseURL)
		}
	}
	if cfg.Bot.PollTimeoutSeconds < 0 {
		return errors.New("bot.poll_timeout must be >= 0")
	}
	return nil
}

func validateServer(server domain.ServerSettings) error {
	if server.Port < 0 || server.Port > 65535 {
		return fmt.Errorf("server.port must be within 0-65535, got %d", server.Port)
	}
	if strings.ContainsAny(server.WebhookPath, " ?#") {
		return fmt.Errorf("server.webhook_path must be a plain path, got %q", server.WebhookPath)
	}
	return nil
}

func validatePrediction(cfg domain.Config) error {
	switch cfg.GetSampler() {
	case domain.SamplerShuffle, domain.SamplerRejection:
		return nil
	default:
		return fmt.Errorf("prediction.sampler must be shuffle|rejection, got %s", cfg.Prediction.Sampler)
	}
}

func validateHistory(cfg domain.Config) error {
	switch cfg.GetHistoryBackend() {
	case domain.HistoryBackendMemory, domain.HistoryBackendFile, domain.HistoryBackendSQLite:
	default:
		return fmt.Errorf("history.backend must be memory|file|sqlite, got %s", cfg.History.Backend)
	}
	if cfg.History.MaxEntries < 0 {
		return errors.New("history.max_entries must be >= 0")
	}
	return nil
}

func validateLogging(cfg domain.Config) error {
	switch cfg.GetLogLevel() {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level must be a logrus level, got %s", cfg.Logging.Level)
	}
	switch cfg.GetLogFormat() {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be text|json, got %s", cfg.Logging.Format)
	}
}
