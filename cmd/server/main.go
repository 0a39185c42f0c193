package main

import (
	"context"
	"ctchen222/Connect-Four/internal/api/controller"
	"ctchen222/Connect-Four/internal/api/service"
	"ctchen222/Connect-Four/internal/config"
	"ctchen222/Connect-Four/internal/db"
	"ctchen222/Connect-Four/internal/events"
	"ctchen222/Connect-Four/internal/hub"
	"ctchen222/Connect-Four/internal/logger"
	"ctchen222/Connect-Four/internal/repository"
	"ctchen222/Connect-Four/internal/server"
	"ctchen222/Connect-Four/internal/telemetry"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	flag "github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "connect-four: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("connect-four", flag.ContinueOnError)
	config.BindFlags(fs, cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdownOtel, err := telemetry.InitOtel(ctx, telemetry.Options{
		Endpoint:     cfg.OTLPEndpoint,
		StdoutTraces: cfg.StdoutTraces,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level)

	metrics, err := telemetry.NewMetrics(otel.Meter(telemetry.ServiceName))
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	// Live sessions go to Redis when it is configured.
	sessionRepo := repository.NewMemorySessionRepository()
	publisher := events.NewNopPublisher()
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer rdb.Close()
		sessionRepo = repository.NewSessionRepository(rdb)
		publisher = events.NewRedisPublisher(rdb)
		go logEvents(ctx, rdb)
	}

	// Create hub
	h := hub.NewHub(cfg.Rules(),
		hub.WithSessionRepository(sessionRepo),
		hub.WithPublisher(publisher),
		hub.WithMetrics(metrics),
		hub.WithBotThinkTime(cfg.BotThinkTime),
	)
	go h.Run(ctx)

	listener, err := server.Listen(cfg.TCPAddr, h)
	if err != nil {
		return err
	}
	go func() {
		if err := listener.Serve(ctx); err != nil {
			slog.Error("TCP listener failed", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(h, controller.NewSessionController(service.NewSessionService(sessionRepo)))
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}
	httpErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-httpErr:
		stop()
		slog.Error("HTTP server failed", "error", err)
	}

	slog.Info("Shutting down server...", "grace", cfg.ShutdownGrace)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server forced to shutdown", "error", err)
	}
	select {
	case <-h.Done():
	case <-shutdownCtx.Done():
		slog.Warn("Sessions still running at shutdown deadline", "live_sessions", h.Live())
	}

	slog.Info("Server exiting")
	return nil
}

// logEvents logs every session event seen on the shared channel, including
// those published by other server instances.
func logEvents(ctx context.Context, rdb *redis.Client) {
	ch, err := events.Subscribe(ctx, rdb)
	if err != nil {
		slog.WarnContext(ctx, "Could not subscribe to session events", "error", err)
		return
	}
	for ev := range ch {
		slog.DebugContext(ctx, "Session event", "event", ev.Type, "payload", string(ev.Payload))
	}
}
