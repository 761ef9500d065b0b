package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/seva-intake/api/internal/devanagari"
	"github.com/seva-intake/api/internal/handlers"
	"github.com/seva-intake/api/internal/platform/auth"
	"github.com/seva-intake/api/internal/platform/config"
	"github.com/seva-intake/api/internal/platform/observability"
	"github.com/seva-intake/api/internal/platform/requestctx"
	"github.com/seva-intake/api/internal/repositories"
	"github.com/seva-intake/api/internal/services"
	"github.com/seva-intake/api/internal/translit"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	eventLogger := newEventLogger(logger.Named("services"))

	var provider services.TransliterationProvider
	if cfg.Features.EnableRemoteTransliteration && strings.TrimSpace(cfg.Transliteration.RemoteEndpoint) != "" {
		remote, err := translit.NewRemoteProvider(
			cfg.Transliteration.RemoteEndpoint,
			translit.WithAuthToken(cfg.Transliteration.RemoteAuthToken),
			translit.WithTimeout(cfg.Transliteration.RemoteTimeout),
		)
		if err != nil {
			logger.Warn("remote transliteration provider disabled", zap.Error(err))
		} else {
			provider = remote
			logger.Info("remote transliteration provider enabled")
		}
	}

	transliterationService := services.NewTransliterationService(services.TransliterationServiceDeps{
		Provider:       provider,
		Engine:         devanagari.Default(),
		Logger:         eventLogger,
		MaxInputLength: cfg.Transliteration.MaxInputLength,
	})

	admissionRepo := repositories.NewInMemoryAdmissionRepository()
	admissionService, err := services.NewAdmissionService(services.AdmissionServiceDeps{
		Repository:      admissionRepo,
		Transliterators: transliterationService,
		Clock:           time.Now,
		IDGenerator:     func() string { return ulid.Make().String() },
		Logger:          eventLogger,
	})
	if err != nil {
		logger.Fatal("failed to initialise admission service", zap.Error(err))
	}

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildVersion(), buildRevision()),
	)
	transliterationHandlers := handlers.NewTransliterationHandlers(transliterationService)
	admissionHandlers := handlers.NewAdmissionHandlers(admissionService)

	opts := []handlers.Option{
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(),
			observability.RecoveryMiddleware(logger),
			observability.RequestLoggerMiddleware(),
		),
		handlers.WithTransliterationRoutes(transliterationHandlers.Routes),
		handlers.WithAdmissionRoutes(admissionHandlers.Routes),
	}

	if token := strings.TrimSpace(cfg.Security.InternalAuthToken); token != "" {
		internalHandlers := handlers.NewInternalHandlers(admissionService)
		opts = append(opts,
			handlers.WithInternalRoutes(internalHandlers.Routes),
			handlers.WithInternalMiddlewares(auth.RequireSession(auth.StaticVerifier{Token: token})),
		)
	} else {
		logger.Warn("internal endpoints disabled; no internal auth token configured")
	}

	router := handlers.NewRouter(opts...)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("seva-intake api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newEventLogger adapts the zap logger to the lightweight event logger the
// services accept, preferring the request-scoped logger when one is present.
func newEventLogger(fallback *zap.Logger) func(context.Context, string, map[string]any) {
	return func(ctx context.Context, event string, fields map[string]any) {
		logger := observability.FromContext(ctx)
		if logger == requestctx.NoopLogger() {
			logger = fallback
		}
		zapFields := make([]zap.Field, 0, len(fields))
		for key, value := range fields {
			zapFields = append(zapFields, zap.Any(key, value))
		}
		logger.Info(event, zapFields...)
	}
}

func buildVersion() string {
	version := strings.TrimSpace(os.Getenv("INTAKE_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	return version
}

func buildRevision() string {
	revision := strings.TrimSpace(os.Getenv("INTAKE_BUILD_COMMIT"))
	if revision == "" {
		revision = "unknown"
	}
	return revision
}
