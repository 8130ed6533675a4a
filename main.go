package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/taskdeck/todo-widget-GO/internal/config"
	"github.com/taskdeck/todo-widget-GO/internal/middleware"
	"github.com/taskdeck/todo-widget-GO/internal/remote"
	"github.com/taskdeck/todo-widget-GO/internal/todo"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger) // for third-party packages that use slog

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, cfg.TraceExporter)
	if err != nil {
		logger.Error("tracing_setup_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdownTracing()

	store := todo.NewStore(cfg.MaxTodos)
	todo.RegisterStoreMetrics(prometheus.DefaultRegisterer, store)

	if cfg.SeedFile != "" {
		seed, err := todo.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Error("seed_file_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store.Merge(seed)
		logger.Info("seed_file_loaded", slog.Int("count", len(seed)))
	}

	client := remote.NewClient(cfg.SeedURL)
	loader := remote.NewLoader(client, store, cfg.SeedLimit, cfg.EnablePriority, logger)

	// Remote seed runs once, and only when nothing was pre-seeded.
	// It is tied to the process context: shutdown before the response
	// arrives cancels the fetch and skips the merge.
	if store.Len() == 0 {
		go loader.Load(ctx)
	}

	r := newRouter(cfg, store, loader, logger)

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server_listen", slog.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newRouter wires the health endpoint, the todo rendering boundary and
// the middleware stack.
func newRouter(cfg config.Config, store *todo.Store, loader *remote.Loader, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// RequestID first so downstream can include it (logger, traces)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Trace-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RateLimitMiddleware(middleware.NewLimiter(cfg.RateRPS, cfg.RateBurst)))
	r.Use(middleware.TracingMiddleware)
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", middleware.MetricsHandler())

	todo.RegisterRoutes(r, store, loader, cfg.EnablePriority)

	return r
}

// setupTracing installs a tracer provider when an exporter is
// configured; with none, spans stay no-ops.
func setupTracing(ctx context.Context, exporter string) (func(), error) {
	var exp sdktrace.SpanExporter
	var err error

	switch exporter {
	case "stdout":
		exp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "otlp":
		exp, err = otlptracehttp.New(ctx)
	default:
		return func() {}, nil
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: l,
	})
	return slog.New(handler)
}
