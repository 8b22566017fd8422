package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/minebot/internal/app"
	"github.com/doeshing/minebot/internal/domain"
)

var configEnvKeys = []string{
	"BOT_TOKEN", "PORT", "MINEBOT_CONFIG",
	"MINEBOT_API_BASE_URL", "MINEBOT_MODE", "MINEBOT_POLL_TIMEOUT", "MINEBOT_WEBHOOK_PATH",
	"MINEBOT_SESSION_TTL", "MINEBOT_SAMPLER",
	"MINEBOT_HISTORY_BACKEND", "MINEBOT_HISTORY_PATH", "MINEBOT_HISTORY_MAX_ENTRIES",
	"MINEBOT_LOG_LEVEL", "MINEBOT_LOG_FORMAT", "MINEBOT_OTEL_ENDPOINT", "MINEBOT_OTEL_DISABLED",
}

// clearConfigEnv unsets config overrides for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func newTestContainer(t *testing.T) *app.Container {
	t.Helper()
	clearConfigEnv(t)
	dir := t.TempDir()
	container, err := app.BuildContainer(context.Background(), app.Options{
		ConfigPath: filepath.Join(dir, "config.yaml"),
		LogOutput:  io.Discard,
	})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func appendRecord(t *testing.T, container *app.Container, chatID int64, mines domain.MineCount, safe domain.PositionSet) {
	t.Helper()
	err := container.HistoryStore.Append(domain.PredictionRecord{
		ID:            "id",
		CreatedAt:     time.Now().Add(-time.Hour),
		ChatID:        chatID,
		Seed:          "seed",
		MineCount:     mines,
		MinePositions: domain.PositionSet{0},
		SafePositions: safe,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestChatConversation(t *testing.T) {
	container := newTestContainer(t)

	out, err := execute(t, NewChatCommand(container), "/start\n/predict 3\nmy-client-id\nexit\n")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}

	for _, want := range []string{domain.MsgWelcome, domain.MsgSeedPrompt, domain.HistoryEchoPrefix, domain.PatternPrefix} {
		if !strings.Contains(out, chatReplyLabel+strings.Split(want, "\n")[0]) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n, _ := container.HistoryStore.Len(); n != 1 {
		t.Fatalf("history len = %d, want 1", n)
	}
	rec, _, _ := container.HistoryStore.Last()
	if rec.Seed != "my-client-id" || rec.MineCount != 3 || len(rec.SafePositions) != domain.SafeCellQuota(3) {
		t.Fatalf("record = %+v", rec)
	}
}

func TestChatWithoutPendingPrediction(t *testing.T) {
	container := newTestContainer(t)

	out, err := execute(t, NewChatCommand(container), "hello\n")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(out, domain.MsgStartOver) {
		t.Fatalf("output = %q", out)
	}
}

func TestHistoryCommands(t *testing.T) {
	container := newTestContainer(t)

	out, err := execute(t, NewHistoryCommand(container), "", "stats")
	if err != nil || !strings.Contains(out, MsgNoHistoryRecorded) {
		t.Fatalf("empty stats = %q, %v", out, err)
	}

	appendRecord(t, container, 1, 3, domain.PositionSet{1, 2, 3})
	appendRecord(t, container, 2, 3, domain.PositionSet{4, 5, 6})
	appendRecord(t, container, 2, 10, domain.PositionSet{7, 8})

	out, err = execute(t, NewHistoryCommand(container), "", "list", "--limit", "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "mines=10") || !strings.Contains(lines[0], "1 hour ago") {
		t.Fatalf("list output = %q", out)
	}

	out, err = execute(t, NewHistoryCommand(container), "", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Predictions recorded: 3", "Distinct chats: 2", "Average safe cells: 2.67", "  3 mines (2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, NewHistoryCommand(container), "", "last")
	if err != nil || !strings.Contains(out, domain.PatternPrefix) || !strings.Contains(out, "mines=10") || !strings.Contains(out, domain.HistoryEchoPrefix) {
		t.Fatalf("last = %q, %v", out, err)
	}

	dest := filepath.Join(t.TempDir(), "export.jsonl")
	if _, err := execute(t, NewHistoryCommand(container), "", "export", dest); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := strings.Count(strings.TrimSpace(string(data)), "\n") + 1; got != 3 {
		t.Fatalf("exported %d lines, want 3", got)
	}

	if _, err := execute(t, NewHistoryCommand(container), "", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := container.HistoryStore.Len(); n != 0 {
		t.Fatalf("len after clear = %d", n)
	}
}

func TestConfigCommands(t *testing.T) {
	container := newTestContainer(t)

	out, err := execute(t, NewConfigCommand(container), "", "path")
	if err != nil || strings.TrimSpace(out) != container.ConfigLoader.Path() {
		t.Fatalf("path = %q, %v", out, err)
	}

	out, err = execute(t, NewConfigCommand(container), "", "diff")
	if err != nil || !strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Fatalf("diff on defaults = %q, %v", out, err)
	}

	if _, err := execute(t, NewConfigCommand(container), "", "set", "server.port", "8080"); err != nil {
		t.Fatalf("set port: %v", err)
	}
	out, err = execute(t, NewConfigCommand(container), "", "get", "server.port")
	if err != nil || out != "8080\n" {
		t.Fatalf("get port = %q, %v", out, err)
	}

	if _, err := execute(t, NewConfigCommand(container), "", "set", "bot.token", "123:secret"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	out, err = execute(t, NewConfigCommand(container), "", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if strings.Contains(out, "123:secret") || !strings.Contains(out, RedactedToken) {
		t.Fatalf("show did not redact token:\n%s", out)
	}

	out, err = execute(t, NewConfigCommand(container), "", "diff")
	if err != nil || out == MsgNoDifferencesFromDefault+"\n" {
		t.Fatalf("diff after edits = %q, %v", out, err)
	}

	if _, err := execute(t, NewConfigCommand(container), "", "set", "bot.mode", "carrier-pigeon"); err == nil {
		t.Fatal("expected validation error for bad mode")
	}
	if _, err := execute(t, NewConfigCommand(container), "", "set", "nope.key", "1"); err == nil {
		t.Fatal("expected error for unknown key")
	}

	if _, err := execute(t, NewConfigCommand(container), "", "reset"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, err = execute(t, NewConfigCommand(container), "", "diff")
	if err != nil || !strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Fatalf("diff after reset = %q, %v", out, err)
	}
}

func TestConfigValidate(t *testing.T) {
	container := newTestContainer(t)

	out, err := execute(t, NewConfigCommand(container), "", "validate")
	if err != nil || !strings.Contains(out, MsgConfigurationValid) {
		t.Fatalf("validate = %q, %v", out, err)
	}
	_, err = execute(t, NewConfigCommand(container), "", "validate", "--require-token")
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("validate --require-token error = %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand(), "")
	if err != nil || !strings.HasPrefix(out, "minebot version ") || !strings.Contains(out, "Go version:") {
		t.Fatalf("version = %q, %v", out, err)
	}
}

func TestWebhookURL(t *testing.T) {
	tests := map[string]string{
		"https://bot.example.com":   "https://bot.example.com/webhook",
		"https://bot.example.com/":  "https://bot.example.com/webhook",
		" https://bot.example.com ": "https://bot.example.com/webhook",
	}
	for base, want := range tests {
		if got := webhookURL(base, "/webhook"); got != want {
			t.Errorf("webhookURL(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestDoctorWithoutToken(t *testing.T) {
	container := newTestContainer(t)

	out, err := execute(t, NewDoctorCommand(container), "")
	if err == nil {
		t.Fatal("expected doctor to fail without a token")
	}
	if !strings.Contains(out, "[ERROR] Bot token") || !strings.Contains(out, "[OK] History: memory (0 records)") {
		t.Fatalf("doctor output = %q", out)
	}
}
