package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/doeshing/minebot/internal/ports"
)

const maxUpdateBytes = 1 << 20

// UpdateHandler processes a raw update payload.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, payload []byte) error
}

// WebhookHandler forwards each POSTed body to the update handler and always
// acknowledges with 200 so the Bot API does not redeliver.
type WebhookHandler struct {
	handler UpdateHandler
	logger  ports.Logger
}

// NewWebhookHandler builds the webhook endpoint.
func NewWebhookHandler(handler UpdateHandler, logger ports.Logger) *WebhookHandler {
	return &WebhookHandler{handler: handler, logger: logger}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateBytes))
	if err != nil {
		h.logger.Warn("read webhook body", map[string]interface{}{"error": err.Error()})
		w.WriteHeader(http.StatusOK)
		return
	}
	// The session may already have transitioned, so a client hang-up must
	// not cut processing short.
	ctx := context.WithoutCancel(r.Context())
	if err := h.handler.HandleUpdate(ctx, body); err != nil {
		h.logger.Error("handle update", err, map[string]interface{}{"bytes": len(body)})
	}
	w.WriteHeader(http.StatusOK)
}

// NewMux routes the webhook path and a health check.
func NewMux(webhookPath string, webhook http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST "+webhookPath, webhook)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
	return mux
}

// ServerConfig controls the webhook HTTP listener.
type ServerConfig struct {
	Port              int
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Serve listens on cfg.Port until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg ServerConfig, handler http.Handler, logger ports.Logger) error {
	listener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.Port)))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", cfg.Port, err)
	}
	return ServeListener(ctx, listener, cfg, handler, logger)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, listener net.Listener, cfg ServerConfig, handler http.Handler, logger ports.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("webhook server listening", map[string]interface{}{"addr": listener.Addr().String()})
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown webhook server: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("webhook server stopped", nil)
	return nil
}
