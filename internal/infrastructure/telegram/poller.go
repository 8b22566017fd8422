package telegram

import (
	"context"
	"time"

	"github.com/doeshing/minebot/internal/ports"
)

const defaultPollBackoff = 3 * time.Second

// UpdateSource yields batches of updates starting at offset.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)
}

// Poller drives the bot with getUpdates long polling.
type Poller struct {
	Source  UpdateSource
	Bot     *Bot
	Timeout time.Duration
	Backoff time.Duration
	Logger  ports.Logger
}

// Run polls until ctx is cancelled. Fetch errors are logged and retried
// after Backoff; handler errors are logged and the update is acknowledged.
func (p *Poller) Run(ctx context.Context) error {
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = defaultPollBackoff
	}
	var offset int64
	for {
		updates, err := p.Source.GetUpdates(ctx, offset, p.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.Logger.Warn("get updates failed", map[string]interface{}{"error": err.Error(), "retry_in": backoff.String()})
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			continue
		}
		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if err := p.Bot.Handle(ctx, update); err != nil {
				p.Logger.Error("handle update", err, map[string]interface{}{"update_id": update.UpdateID})
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
