package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/minebot/internal/app"
	configapp "github.com/doeshing/minebot/internal/application/config"
)

// NewWebhookCommand manages the Bot API webhook registration.
func NewWebhookCommand(container *app.Container) *cobra.Command {
	webhookCmd := &cobra.Command{
		Use:   "webhook",
		Short: "Register or remove the Telegram webhook",
	}
	webhookCmd.AddCommand(
		newWebhookSetCommand(container),
		newWebhookDeleteCommand(container),
	)
	return webhookCmd
}

func newWebhookSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <public-url>",
		Short: "Point Telegram at <public-url> (the configured webhook path is appended)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config
			if err := configapp.Validate(cfg, true); err != nil {
				return err
			}
			if strings.TrimSpace(args[0]) == "" {
				return errors.New(ErrWebhookURLRequired)
			}
			target := webhookURL(args[0], cfg.GetWebhookPath())
			if err := container.NewTelegramClient(cfg).SetWebhook(cmd.Context(), target); err != nil {
				return fmt.Errorf("failed to set webhook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Webhook set to %s\n", target)
			return nil
		},
	}
}

func newWebhookDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook so polling mode can be used",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config
			if err := configapp.Validate(cfg, true); err != nil {
				return err
			}
			if err := container.NewTelegramClient(cfg).DeleteWebhook(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete webhook: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgWebhookDeleted)
			return nil
		},
	}
}

func webhookURL(base, path string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/") + path
}
