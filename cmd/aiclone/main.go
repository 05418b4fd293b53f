package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/vrcrush/ai-interview-clone/internal/adapter/cli"
	counterredis "github.com/vrcrush/ai-interview-clone/internal/adapter/counter/redis"
	"github.com/vrcrush/ai-interview-clone/internal/adapter/httpapi"
	"github.com/vrcrush/ai-interview-clone/internal/adapter/llm/anthropic"
	llmhttp "github.com/vrcrush/ai-interview-clone/internal/adapter/llm/http"
	"github.com/vrcrush/ai-interview-clone/internal/adapter/llm/static"
	"github.com/vrcrush/ai-interview-clone/internal/adapter/observability"
	"github.com/vrcrush/ai-interview-clone/internal/adapter/store/sqlite"
	"github.com/vrcrush/ai-interview-clone/internal/config"
	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
	"github.com/vrcrush/ai-interview-clone/internal/version"
)

func main() {
	if err := run(); err != nil {
		// Redact API keys from URLs in error messages before logging
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Create cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "aiclone",
		EnvPrefix:   "AIC",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Server:           &app{cfg: cfg},
		DefaultAddr:      cfg.Server.Addr,
		DefaultProvider:  cfg.Provider,
		DefaultLogLevel:  cfg.Observability.Logging.Level,
		DefaultLogFormat: cfg.Observability.Logging.Format,
		Version:          version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// app wires the configured collaborators and runs the HTTP server until
// the context is cancelled.
type app struct {
	cfg config.Config
}

func (a *app) Serve(ctx context.Context, opts cli.ServeOptions) error {
	cfg := a.cfg

	// Build observability components
	obs := buildObservability(cfg.Observability)
	appLogger := buildAppLogger(cfg.Observability, opts.LogLevel, opts.LogFormat)

	// Load the persona knowledge base; a broken document degrades the
	// persona rather than preventing startup
	kb, loadErr := knowledge.LoadOrMarker(knowledge.NewFileStore(cfg.Knowledge.Path))
	if loadErr != nil {
		log.Printf("warning: knowledge base load failed: %v (serving degraded persona)", loadErr)
	}

	provider, err := buildProvider(cfg, opts.Provider, obs)
	if err != nil {
		return err
	}

	guardOpts := chat.GuardOptions{}
	if appLogger != nil {
		guardOpts.Logger = appLogger
	}
	guard, err := chat.NewGuard(kb, provider, guardOpts)
	if err != nil {
		return fmt.Errorf("guard setup failed: %w", err)
	}

	deps := httpapi.Deps{
		Guard: guard,
		KB:    kb,
	}
	if appLogger != nil {
		deps.Logger = appLogger
	}

	// Initialize contact store if enabled
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			contactStore, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize contact store: %v", err)
			} else {
				deps.Contacts = contactStore
				defer contactStore.Close()
			}
		}
	}

	// Initialize conversation counter if enabled
	if cfg.Counter.Enabled {
		counter, err := counterredis.NewCounter(ctx, cfg.Counter.RedisURL, cfg.Counter.Key)
		if err != nil {
			log.Printf("warning: failed to connect conversation counter: %v", err)
		} else {
			deps.Counter = counter
			defer counter.Close()
		}
	}

	server := httpapi.NewServer(httpapi.Config{
		Addr:            opts.Addr,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimit:       cfg.RateLimit.Requests,
		RateWindow:      parseDuration("rateLimit.window", cfg.RateLimit.Window, time.Hour),
		RequestTimeout:  parseDuration("server.requestTimeout", cfg.Server.RequestTimeout, 60*time.Second),
		ShutdownTimeout: parseDuration("server.shutdownTimeout", cfg.Server.ShutdownTimeout, 10*time.Second),
	}, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	log.Printf("listening on %s", opts.Addr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if obs.metrics != nil {
		stats := obs.metrics.GetStats()
		log.Printf("model calls: %d requests, %d tokens in, %d tokens out, %d errors",
			stats.TotalRequests, stats.TotalTokensIn, stats.TotalTokensOut, stats.ErrorCount)
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "aiclone"))
	}
	return paths
}

// observabilityComponents holds shared observability instances
type observabilityComponents struct {
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
}

// buildObservability creates model-call observability components based on configuration
func buildObservability(cfg config.ObservabilityConfig) observabilityComponents {
	var logger llmhttp.Logger
	var metrics llmhttp.Metrics

	if cfg.Logging.Enabled {
		logLevel := llmhttp.LogLevelInfo
		switch cfg.Logging.Level {
		case "debug":
			logLevel = llmhttp.LogLevelDebug
		case "error":
			logLevel = llmhttp.LogLevelError
		}

		logFormat := llmhttp.LogFormatHuman
		if cfg.Logging.Format == "json" {
			logFormat = llmhttp.LogFormatJSON
		}

		logger = llmhttp.NewDefaultLogger(logLevel, logFormat, cfg.Logging.RedactAPIKeys)
	}

	if cfg.Metrics.Enabled {
		metrics = llmhttp.NewDefaultMetrics()
	}

	return observabilityComponents{
		logger:  logger,
		metrics: metrics,
	}
}

// buildAppLogger creates the structured application logger shared by the
// HTTP handlers and the conversation guard.
func buildAppLogger(cfg config.ObservabilityConfig, level, format string) *observability.Logger {
	if !cfg.Logging.Enabled {
		return nil
	}
	return observability.NewLogger(observability.ParseLevel(level), observability.ParseFormat(format))
}

// buildProvider resolves and constructs the model provider. An Anthropic
// entry without a usable API key falls back to the static provider so
// the server still answers with canned replies.
func buildProvider(cfg config.Config, override string, obs observabilityComponents) (chat.ModelProvider, error) {
	if override != "" {
		cfg.Provider = override
	}
	name, providerCfg := cfg.ActiveProvider()

	switch name {
	case "anthropic":
		apiKey := providerCfg.APIKey
		if apiKey == "" || strings.Contains(apiKey, "${") {
			log.Println("Anthropic: no API key provided (set ANTHROPIC_API_KEY or providers.anthropic.apiKey), using static provider")
			return static.NewProvider(""), nil
		}
		client := anthropic.NewHTTPClient(apiKey, providerCfg.Model)
		client.SetTimeout(llmhttp.ParseTimeout(providerCfg.Timeout, cfg.HTTP.Timeout, 60*time.Second))
		client.SetRetryConfig(llmhttp.BuildRetryConfig(providerCfg, cfg.HTTP))
		return anthropic.NewProvider(client, obs.logger, obs.metrics), nil

	case "static":
		return static.NewProvider(""), nil

	default:
		return nil, fmt.Errorf("unsupported provider %q (supported: anthropic, static)", name)
	}
}

func parseDuration(name, value string, defaultVal time.Duration) time.Duration {
	if value == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("warning: invalid %s %q, using default %s", name, value, defaultVal)
		return defaultVal
	}
	return parsed
}

// Compile-time interface compliance checks
var _ chat.ModelProvider = (*anthropic.Provider)(nil)
var _ chat.ModelProvider = (*static.Provider)(nil)
var _ httpapi.Responder = (*chat.Guard)(nil)
var _ httpapi.ContactStore = (*sqlite.Store)(nil)
var _ httpapi.ConversationCounter = (*counterredis.Counter)(nil)
var _ cli.ChatServer = (*app)(nil)
