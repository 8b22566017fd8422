// Package session implements the two-step conversation that turns a mine
// count and a seed into a rendered prediction.
//
// A conversation is Idle until a valid /predict command stores a pending
// mine count, which makes it AwaitingSeed. The next non-command text from
// the same user in the same chat is taken as the seed, consumes the pending
// count and produces a prediction. Commands are dispatched once through
// Controller.Dispatch; per-turn behaviour comes only from the stored state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/minebot/internal/application/predict"
	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// Command names understood by the controller.
const (
	CommandStart   = "start"
	CommandPredict = "predict"
	CommandHelp    = "help"
)

// Predictor produces and records a prediction.
type Predictor interface {
	Predict(ctx context.Context, req predict.Request) (domain.PredictionRecord, error)
}

// Controller routes inbound messages through the conversation state machine.
type Controller struct {
	Predictor Predictor
	Sessions  ports.SessionStore
	Messenger ports.Messenger
	Clock     ports.Clock
	Glyphs    domain.Glyphs
	Logger    ports.Logger
}

// Dispatch handles one inbound message. Validation problems are answered
// with a corrective reply and never returned. The returned error reports
// delivery or internal failures for the caller to observe; session state has
// already transitioned by then and is not rolled back.
func (c *Controller) Dispatch(ctx context.Context, msg domain.InboundMessage) error {
	if c.Predictor == nil || c.Sessions == nil || c.Messenger == nil {
		return errors.New("session.Controller dependencies not satisfied")
	}

	if name, args, ok := msg.Command(); ok {
		switch name {
		case CommandStart:
			return c.reply(ctx, msg, domain.MsgWelcome)
		case CommandHelp:
			return c.reply(ctx, msg, domain.MsgHelp)
		case CommandPredict:
			return c.handlePredict(ctx, msg, args)
		}
	}
	return c.handleText(ctx, msg)
}

// State reports whether the conversation is waiting for a seed and, if so,
// with which mine count.
func (c *Controller) State(key domain.SessionKey) (domain.MineCount, bool) {
	state, ok := c.Sessions.Peek(key)
	return state.MineCount, ok
}

func (c *Controller) handlePredict(ctx context.Context, msg domain.InboundMessage, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	count, err := domain.ParseMineCount(arg)
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		c.debug("rejected mine count", msg, map[string]interface{}{"arg": arg, "reason": verr.Err.Error()})
		return c.reply(ctx, msg, verr.Message)
	}

	c.Sessions.Put(msg.SessionKey(), domain.SessionState{MineCount: count, CreatedAt: c.now()})
	c.debug("awaiting seed", msg, map[string]interface{}{"mine_count": int(count)})
	return c.reply(ctx, msg, domain.MsgSeedPrompt)
}

func (c *Controller) handleText(ctx context.Context, msg domain.InboundMessage) error {
	state, ok := c.Sessions.Take(msg.SessionKey())
	if !ok {
		return c.reply(ctx, msg, domain.MsgStartOver)
	}

	record, err := c.Predictor.Predict(ctx, predict.Request{
		ChatID:    msg.ChatID,
		Seed:      msg.Text,
		MineCount: state.MineCount,
	})
	if err != nil {
		c.logError("prediction failed", err, msg)
		return errors.Join(fmt.Errorf("predict: %w", err), c.reply(ctx, msg, domain.MsgPredictionFailed))
	}

	var errs []error
	if echo, ok := c.historyEcho(record, msg); ok {
		errs = append(errs, c.reply(ctx, msg, echo))
	}
	errs = append(errs, c.reply(ctx, msg, domain.PatternPrefix+record.Grid().Format(c.Glyphs)))
	c.debug("prediction delivered", msg, map[string]interface{}{"id": record.ID, "mine_count": int(state.MineCount)})
	return errors.Join(errs...)
}

// historyEcho renders the record this turn appended. Reading the log back
// could return another conversation's entry under concurrent turns.
func (c *Controller) historyEcho(record domain.PredictionRecord, msg domain.InboundMessage) (string, bool) {
	text, err := record.EchoText()
	if err != nil {
		c.logError("encode history echo", err, msg)
		return "", false
	}
	return text, true
}

func (c *Controller) reply(ctx context.Context, msg domain.InboundMessage, text string) error {
	if err := c.Messenger.Send(ctx, msg.ChatID, text); err != nil {
		c.logError("send reply", err, msg)
		return fmt.Errorf("send reply to chat %d: %w", msg.ChatID, err)
	}
	return nil
}

func (c *Controller) now() time.Time {
	if c.Clock == nil {
		return time.Now().UTC()
	}
	return c.Clock.Now()
}

func (c *Controller) debug(text string, msg domain.InboundMessage, fields map[string]interface{}) {
	if c.Logger == nil {
		return
	}
	fields["chat_id"] = msg.ChatID
	fields["user_id"] = msg.UserID
	c.Logger.Debug(text, fields)
}

func (c *Controller) logError(text string, err error, msg domain.InboundMessage) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(text, err, map[string]interface{}{
		"chat_id": msg.ChatID,
		"user_id": msg.UserID,
	})
}
