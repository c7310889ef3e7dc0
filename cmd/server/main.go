package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lakefield/deepresearch/config"
	"github.com/lakefield/deepresearch/pkg/otel"
	"github.com/lakefield/deepresearch/server/api"
	"github.com/lakefield/deepresearch/server/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "config.yaml", "configuration file")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if otel.EnableTelemetry {
		if err := otel.Setup(ctx, "deepresearch", version); err != nil {
			slog.Error("unable to setup telemetry", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		slog.Error("unable to parse config", "error", err)
		os.Exit(1)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	handler, err := api.New(cfg)

	if err != nil {
		slog.Error("unable to create handler", "error", err)
		os.Exit(1)
	}

	mcpServer, err := mcp.New("deepresearch", cfg.Tools())

	if err != nil {
		slog.Error("unable to create mcp server", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	handler.Attach(r)
	r.Mount("/mcp", mcpServer)

	server := &http.Server{
		Addr: cfg.Address,

		Handler: otelhttp.NewHandler(r, "server"),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		server.Shutdown(shutdownCtx)
	}()

	slog.Info("starting server", "address", cfg.Address)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
