package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/doeshing/minebot/internal/application/doctor"
	"github.com/doeshing/minebot/internal/application/predict"
	"github.com/doeshing/minebot/internal/application/session"
	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/infrastructure/config"
	"github.com/doeshing/minebot/internal/infrastructure/history"
	"github.com/doeshing/minebot/internal/infrastructure/random"
	"github.com/doeshing/minebot/internal/infrastructure/sessionstore"
	"github.com/doeshing/minebot/internal/infrastructure/system"
	"github.com/doeshing/minebot/internal/infrastructure/telegram"
	"github.com/doeshing/minebot/internal/pkg/logger"
	"github.com/doeshing/minebot/internal/ports"
)

// Options tunes container construction.
type Options struct {
	Verbose    bool
	ConfigPath string
	LogOutput  io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.Logger
	Clock          ports.Clock
	HistoryStore   ports.HistoryRepository
	Sessions       *sessionstore.MemoryStore
	Predictor      *predict.Service
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph from the loaded config.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:   cfg.GetLogLevel(),
		Format:  cfg.GetLogFormat(),
		Verbose: opts.Verbose,
		Out:     opts.LogOutput,
	})

	sampler, err := random.New(cfg.GetSampler())
	if err != nil {
		return nil, err
	}
	historyStore, err := history.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	clock := system.Clock{}
	container := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Clock:          clock,
		HistoryStore:   historyStore,
		Sessions:       sessionstore.NewMemoryStore(cfg.GetSessionTTL(), clock),
		Predictor: &predict.Service{
			Sampler: sampler,
			History: historyStore,
			IDs:     system.UUIDGenerator{},
			Clock:   clock,
			Logger:  log.With(map[string]interface{}{"component": "predict"}),
		},
	}
	container.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		History:        historyStore,
		Identity: func(cfg domain.Config) doctor.BotIdentity {
			return container.NewTelegramClient(cfg)
		},
	}
	return container, nil
}

// NewController builds a session controller replying through messenger.
func (c *Container) NewController(messenger ports.Messenger) *session.Controller {
	return &session.Controller{
		Predictor: c.Predictor,
		Sessions:  c.Sessions,
		Messenger: messenger,
		Clock:     c.Clock,
		Glyphs:    c.Config.Display,
		Logger:    c.Logger.With(map[string]interface{}{"component": "session"}),
	}
}

// NewTelegramClient builds a Bot API client for cfg. The HTTP timeout
// leaves room for a full long-poll cycle.
func (c *Container) NewTelegramClient(cfg domain.Config) *telegram.Client {
	timeout := domain.DefaultHTTPClientTimeout
	if poll := cfg.GetPollTimeout() + cfg.GetReadHeaderTimeout(); poll > timeout {
		timeout = poll
	}
	return telegram.NewClient(cfg.GetAPIBaseURL(), cfg.Bot.Token, &http.Client{Timeout: timeout})
}

// Close releases the history backend.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
