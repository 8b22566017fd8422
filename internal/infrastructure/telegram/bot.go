package telegram

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

const tracerName = "github.com/doeshing/minebot/internal/infrastructure/telegram"

// Dispatcher consumes inbound messages. session.Controller satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg domain.InboundMessage) error
}

// Bot decodes updates and hands text messages to the dispatcher.
type Bot struct {
	dispatcher Dispatcher
	logger     ports.Logger
	tracer     trace.Tracer
}

// BotOption customises a Bot.
type BotOption func(*Bot)

// WithTracerProvider records update spans on tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) BotOption {
	return func(b *Bot) { b.tracer = tp.Tracer(tracerName) }
}

// NewBot builds a Bot. Spans go to the global tracer provider, which is
// a no-op unless telemetry was set up.
func NewBot(dispatcher Dispatcher, logger ports.Logger, opts ...BotOption) *Bot {
	b := &Bot{
		dispatcher: dispatcher,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HandleUpdate decodes a raw update payload and handles it.
func (b *Bot) HandleUpdate(ctx context.Context, payload []byte) error {
	var update Update
	if err := json.Unmarshal(payload, &update); err != nil {
		return fmt.Errorf("decode update: %w", err)
	}
	return b.Handle(ctx, update)
}

// Handle routes one decoded update.
func (b *Bot) Handle(ctx context.Context, update Update) error {
	ctx, span := b.tracer.Start(ctx, "telegram.update",
		trace.WithAttributes(attribute.Int64("telegram.update_id", update.UpdateID)))
	defer span.End()

	msg, ok := update.Inbound()
	if !ok {
		b.logger.Debug("ignoring update without text", map[string]interface{}{"update_id": update.UpdateID})
		return nil
	}
	span.SetAttributes(attribute.Int64("telegram.chat_id", msg.ChatID))

	if err := b.dispatcher.Dispatch(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		return err
	}
	return nil
}
