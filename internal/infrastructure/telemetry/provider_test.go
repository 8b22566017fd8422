package telemetry_test

import (
	"context"
	"testing"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/infrastructure/telemetry"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.TelemetrySettings
	}{
		{name: "no endpoint"},
		{name: "disabled", cfg: domain.TelemetrySettings{Endpoint: "http://localhost:4318", Disabled: true}},
		// Non-routable address: nothing is exported before shutdown.
		{name: "enabled", cfg: domain.TelemetrySettings{Endpoint: "http://192.0.2.1:4318"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := telemetry.Setup(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("Setup: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestNoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), domain.TelemetrySettings{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
