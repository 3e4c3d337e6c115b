// Package app provides application initialization and dependency injection.
//
// App is the core container that wires configuration, Genkit, the persona
// catalog, the conversation store, and the chat service together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"

	"github.com/guruchat/guru/internal/chat"
	"github.com/guruchat/guru/internal/config"
	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/engine"
	"github.com/guruchat/guru/internal/llm"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/observability"
	"github.com/guruchat/guru/internal/persona"
	"github.com/guruchat/guru/internal/summary"
)

// App is the core application container.
type App struct {
	Config  *config.Config
	Logger  log.Logger
	Genkit  *genkit.Genkit
	Catalog *persona.Catalog
	Store   *conversation.Store
	Service *chat.Service

	otelShutdown func(context.Context) error
}

// Setup creates and initializes the application.
// Returns an App with embedded cleanup — call Close() to release.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		logger = log.NewNop()
	}

	// Tracing must be registered before Genkit initialization so Genkit's
	// TracerProvider picks up the span processor.
	otelShutdown, err := observability.SetupDatadog(ctx, observability.Config{
		AgentHost:   cfg.Datadog.AgentHost,
		Environment: cfg.Datadog.Environment,
		ServiceName: cfg.Datadog.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	client := llm.NewGenkitClient(g, cfg.FullModelName(), float64(cfg.Temperature), logger)

	catalog := persona.Builtin()
	store := conversation.NewStore()

	eng, err := engine.New(engine.Config{
		Client:   client,
		Logger:   logger,
		MaxSteps: cfg.MaxSteps,
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	svc, err := chat.New(chat.Config{
		Catalog:    catalog,
		Store:      store,
		Engine:     eng,
		Summarizer: summary.New(client, logger, cfg.SummaryMaxTokens),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat service: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		Genkit:       g,
		Catalog:      catalog,
		Store:        store,
		Service:      svc,
		otelShutdown: otelShutdown,
	}, nil
}

// provideGenkit initializes Genkit with the configured AI provider.
// Supports gemini (default), ollama, and openai providers.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery)
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		logger.Info("initialized Genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		logger.Info("initialized Genkit with openai provider", "model", cfg.ModelName)

	default: // "gemini"
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		logger.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
	}

	return g, nil
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")

	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Logger.Warn("shutting down tracer provider", "error", err)
		}
	}
	return nil
}
