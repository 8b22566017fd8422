package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/minebot/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.GetPort() != domain.DefaultPort || cfg.GetHistoryBackend() != domain.HistoryBackendMemory {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Display != domain.DefaultGlyphs {
		t.Fatalf("display = %+v, want default glyphs", cfg.Display)
	}
}

func TestLoadReadsFileAndAppliesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("bot:\n  token: from-file\n  mode: polling\nserver:\n  port: 8080\nhistory:\n  backend: sqlite\n  max_entries: 50\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("PORT", "9090")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Bot.Token != "from-env" {
		t.Errorf("token = %q, want env override", cfg.Bot.Token)
	}
	if cfg.GetPort() != 9090 {
		t.Errorf("port = %d, want 9090", cfg.GetPort())
	}
	if cfg.GetMode() != domain.ModePolling {
		t.Errorf("mode = %s, want file value", cfg.GetMode())
	}
	if cfg.History.MaxEntries != 50 || cfg.GetHistoryBackend() != domain.HistoryBackendSQLite {
		t.Errorf("history = %+v", cfg.History)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("PORT", "not-a-port")

	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("bot: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestPathHonoursEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, path)

	if got := NewFileLoader("").Path(); got != path {
		t.Fatalf("Path() = %s, want %s", got, path)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	if err := loader.Save(domain.Config{Server: domain.ServerSettings{Port: 1}}); err != nil {
		t.Fatal(err)
	}

	if _, err := loader.Reset(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	cfg, err := loader.LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config after reset differs from defaults (-want +got):\n%s", diff)
	}
}
