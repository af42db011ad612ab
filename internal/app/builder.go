package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"

	"github.com/warfront-labs/warsync/internal/api"
	"github.com/warfront-labs/warsync/internal/arrowhead"
	"github.com/warfront-labs/warsync/internal/config"
	pkgsync "github.com/warfront-labs/warsync/internal/sync"
	"github.com/warfront-labs/warsync/internal/sync/coordinator"
	"github.com/warfront-labs/warsync/internal/telemetry"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
)

// WarsyncAppOptions is a function that configures the app builder
type WarsyncAppOptions func(*warsyncAppConfig) error

// warsyncAppConfig collects everything needed to assemble a WarsyncApp.
// It supports dependency injection for testing while providing sensible
// defaults for production.
type warsyncAppConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	client      arrowhead.Client
	syncManager pkgsync.Manager
	storage     *storageComponents

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	// Telemetry components
	meterProvider metric.MeterProvider
}

func baseConfig(opts ...WarsyncAppOptions) (*warsyncAppConfig, error) {
	cfg := &warsyncAppConfig{
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.address == "" {
		cfg.address = cfg.config.ServerAddress()
	}

	return cfg, nil
}

// NewWarsyncApp wires storage, sync, and the HTTP server into a runnable app
func NewWarsyncApp(
	ctx context.Context,
	opts ...WarsyncAppOptions,
) (*WarsyncApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	// Single decision point for DB vs in-memory storage; both the sync
	// writer and the read service come from the same place.
	if cfg.storage == nil {
		cfg.storage, err = buildStorage(ctx, cfg.config)
		if err != nil {
			return nil, fmt.Errorf("failed to build storage: %w", err)
		}
	}

	// Ensure cleanup happens on error
	var cleanupNeeded = true
	defer func() {
		if cleanupNeeded && cfg.storage != nil {
			cfg.storage.cleanup()
		}
	}()

	syncCoordinator, err := buildSyncComponents(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync components: %w", err)
	}

	httpServer, err := buildHTTPServer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)

	// Cleanup is now owned by the app, not the defer above
	cleanupNeeded = false

	cancelFunc := func() {
		if cfg.storage != nil {
			cfg.storage.cleanup()
		}
		cancel()
	}

	return &WarsyncApp{
		config:      cfg.config,
		coordinator: syncCoordinator,
		httpServer:  httpServer,
		ctx:         appCtx,
		cancelFunc:  cancelFunc,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) WarsyncAppOptions {
	return func(cfg *warsyncAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server listen address
func WithAddress(addr string) WarsyncAppOptions {
	return func(cfg *warsyncAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		parts := strings.SplitN(addr, ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			return fmt.Errorf("address is not a valid host:port: %s", addr)
		}
		host := parts[0]
		port := parts[1]

		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid host:port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) WarsyncAppOptions {
	return func(cfg *warsyncAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithClient allows injecting a custom war API client (for testing)
func WithClient(c arrowhead.Client) WarsyncAppOptions {
	return func(cfg *warsyncAppConfig) error {
		cfg.client = c
		return nil
	}
}

// WithSyncManager allows injecting a custom sync manager (for testing)
func WithSyncManager(sm pkgsync.Manager) WarsyncAppOptions {
	return func(cfg *warsyncAppConfig) error {
		cfg.syncManager = sm
		return nil
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for sync metrics
func WithMeterProvider(mp metric.MeterProvider) WarsyncAppOptions {
	return func(cfg *warsyncAppConfig) error {
		cfg.meterProvider = mp
		return nil
	}
}

// buildSyncComponents builds the war API client, sync manager, and coordinator
func buildSyncComponents(b *warsyncAppConfig) (coordinator.Coordinator, error) {
	slog.Info("Initializing sync components")

	interval, err := b.config.SyncInterval()
	if err != nil {
		return nil, fmt.Errorf("invalid sync interval: %w", err)
	}

	if b.syncManager == nil {
		if b.client == nil {
			timeout, err := b.config.SourceTimeout()
			if err != nil {
				return nil, fmt.Errorf("invalid source timeout: %w", err)
			}
			b.client, err = arrowhead.NewClient(b.config.Source.Endpoint, timeout)
			if err != nil {
				return nil, fmt.Errorf("failed to create war API client: %w", err)
			}
		}

		b.syncManager = pkgsync.NewDefaultSyncManager(
			b.client,
			b.storage.writer,
			b.config.Sync.Languages,
		)
	}

	var coordOpts []coordinator.Option
	if b.meterProvider != nil {
		syncMetrics, err := telemetry.NewSyncMetrics(b.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create sync metrics: %w", err)
		}
		if syncMetrics != nil {
			coordOpts = append(coordOpts, coordinator.WithSyncMetrics(syncMetrics))
			slog.Info("Sync metrics enabled")
		}
	}

	syncCoordinator, err := coordinator.New(b.syncManager, interval, coordOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}
	slog.Info("Sync components initialized successfully")

	return syncCoordinator, nil
}

// buildHTTPServer builds the HTTP server with router and middleware
func buildHTTPServer(b *warsyncAppConfig) (*http.Server, error) {
	slog.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	serverOpts := []api.ServerOption{
		api.WithMiddlewares(b.middlewares...),
	}
	if languages := b.config.Sync.Languages; len(languages) > 0 {
		serverOpts = append(serverOpts, api.WithDefaultLanguage(languages[0]))
	}

	router := api.NewServer(b.storage.service, serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return server, nil
}
