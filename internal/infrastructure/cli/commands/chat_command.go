package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/doeshing/minebot/internal/app"
	"github.com/doeshing/minebot/internal/domain"
)

// NewChatCommand creates a local REPL that talks to the bot logic without
// Telegram.
func NewChatCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bot in the terminal",
		Long:  "Runs the /predict conversation locally. Type /predict <mines>, then any seed. Ctrl-D or 'exit' quits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), container, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runChat(ctx context.Context, container *app.Container, in io.Reader, out io.Writer) error {
	messenger := &consoleMessenger{out: out}
	controller := container.NewController(messenger)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, chatPrompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			fmt.Fprint(out, chatPrompt)
			continue
		case "exit", "quit":
			return nil
		}

		msg := domain.InboundMessage{ChatID: chatChatID, UserID: chatUserID, Text: line}
		if err := controller.Dispatch(ctx, msg); err != nil {
			container.Logger.Error("dispatch", err, nil)
		}
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, chatPrompt)
	}
	return scanner.Err()
}

// consoleMessenger prints bot replies to the terminal.
type consoleMessenger struct {
	mu  sync.Mutex
	out io.Writer
}

func (m *consoleMessenger) Send(_ context.Context, _ int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := fmt.Fprintf(m.out, "%s%s\n", chatReplyLabel, text)
	return err
}
