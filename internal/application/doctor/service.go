// Package doctor runs environment diagnostics for the bot.
package doctor

import (
	"context"
	"errors"
	"fmt"

	configapp "github.com/doeshing/minebot/internal/application/config"
	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// BotIdentity resolves the bot account behind the configured token.
type BotIdentity interface {
	GetMe(ctx context.Context) (string, error)
}

// Service runs diagnostics and returns a report.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	// Identity builds a Bot API identity lookup for cfg. Nil skips the check.
	Identity func(cfg domain.Config) BotIdentity
}

// Run executes checks. A config that fails to load aborts the run with an
// error; every other problem is reported as a check.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg, false); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", "valid"))
	}

	checks = append(checks, s.tokenCheck(ctx, cfg))
	checks = append(checks, s.historyCheck())
	checks = append(checks, telemetryCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) tokenCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.HasToken() {
		return fail("Bot token", "BOT_TOKEN or bot.token not set")
	}
	if s.Identity == nil {
		return ok("Bot token", "configured")
	}
	name, err := s.Identity(cfg).GetMe(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return warn("Bot token", "Bot API did not answer in time")
		}
		return fail("Bot token", err.Error())
	}
	return ok("Bot token", "authenticated as @"+name)
}

func (s *Service) historyCheck() domain.HealthCheck {
	if s.History == nil {
		return warn("History", "history store not initialized")
	}
	n, err := s.History.Len()
	if err != nil {
		return fail("History", fmt.Sprintf("%s: %v", s.History.Path(), err))
	}
	return ok("History", fmt.Sprintf("%s (%d records)", s.History.Path(), n))
}

func telemetryCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsTelemetryEnabled() {
		return ok("Telemetry", "disabled")
	}
	return ok("Telemetry", "exporting to "+cfg.Telemetry.Endpoint)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
