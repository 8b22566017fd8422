package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/minebot/internal/app"
	configapp "github.com/doeshing/minebot/internal/application/config"
	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/infrastructure/telegram"
	"github.com/doeshing/minebot/internal/infrastructure/telemetry"
)

const telemetryFlushTimeout = 5 * time.Second

// NewServeCommand creates the serve command that runs the bot.
func NewServeCommand(container *app.Container) *cobra.Command {
	var (
		mode string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot (webhook or long polling)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config
			if mode != "" {
				cfg.Bot.Mode = mode
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), container, cfg)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Update delivery mode (webhook|polling), default from config")
	cmd.Flags().IntVar(&port, "port", 0, "Webhook listen port, default from config or PORT")
	return cmd
}

func runServe(ctx context.Context, container *app.Container, cfg domain.Config) error {
	if err := configapp.Validate(cfg, true); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	log := container.Logger

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Warn("telemetry shutdown", map[string]interface{}{"error": err.Error()})
		}
	}()

	client := container.NewTelegramClient(cfg)
	bot := telegram.NewBot(container.NewController(client), log.With(map[string]interface{}{"component": "telegram"}))

	go container.Sessions.RunSweeper(ctx, cfg.GetSessionTTL(), func(n int) {
		log.Debug("expired sessions swept", map[string]interface{}{"count": n})
	})

	log.Info("starting bot", map[string]interface{}{
		"mode":    cfg.GetMode(),
		"history": container.HistoryStore.Path(),
		"sampler": cfg.GetSampler(),
	})

	switch cfg.GetMode() {
	case domain.ModePolling:
		if err := client.DeleteWebhook(ctx); err != nil {
			log.Warn("delete webhook before polling", map[string]interface{}{"error": err.Error()})
		}
		poller := &telegram.Poller{
			Source:  client,
			Bot:     bot,
			Timeout: cfg.GetPollTimeout(),
			Logger:  log,
		}
		return poller.Run(ctx)
	default:
		handler := telegram.NewMux(cfg.GetWebhookPath(), telegram.NewWebhookHandler(bot, log))
		return telegram.Serve(ctx, telegram.ServerConfig{
			Port:              cfg.GetPort(),
			ReadHeaderTimeout: cfg.GetReadHeaderTimeout(),
			ShutdownTimeout:   cfg.GetShutdownTimeout(),
		}, handler, log)
	}
}
