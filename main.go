package main

import (
	"context"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/testgen-ai/testgen/common"
	"github.com/testgen-ai/testgen/common/config"
	"github.com/testgen-ai/testgen/common/graceful"
	"github.com/testgen-ai/testgen/common/logger"
	"github.com/testgen-ai/testgen/controller"
	"github.com/testgen-ai/testgen/middleware"
	"github.com/testgen-ai/testgen/relay/githost"
	"github.com/testgen-ai/testgen/relay/llm"
	"github.com/testgen-ai/testgen/relay/pipeline"
	"github.com/testgen-ai/testgen/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	common.Init()
	logger.SetupLogger()

	// Setup enhanced logger with alertPusher integration
	logger.SetupEnhancedLogger(ctx)

	logger.Logger.Info("testgen started",
		zap.String("version", common.Version),
		zap.Bool("personal_token", config.GitHubToken != ""))

	if config.GinMode != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// the model is optional; generation endpoints answer 503 without it
	var model llm.Invoker
	gemini, err := llm.NewGeminiFromConfig(ctx)
	switch {
	case err == nil:
		model = gemini
		logger.Logger.Info("language model configured", zap.String("model", gemini.Model()))
	case errors.Is(err, llm.ErrModelUnavailable):
		logger.Logger.Warn("GEMINI_API_KEY is not set, generation endpoints are disabled")
	default:
		logger.Logger.Fatal("failed to initialize language model", zap.Error(err))
	}

	ctl := &controller.Controller{
		Hosts:       githost.NewFactoryFromConfig(),
		Pipeline:    &pipeline.Pipeline{Model: model, Concurrency: config.ContentFetchConcurrency},
		OAuth:       controller.NewOAuthConfig(),
		StaticToken: config.GitHubToken,
	}

	logLevel := glog.LevelInfo
	if config.DebugEnabled {
		logLevel = glog.LevelDebug
	}

	// Initialize HTTP server
	server := gin.New()
	server.RedirectTrailingSlash = false
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(logLevel.String()),
			gmw.WithLogger(logger.Logger.Named("gin")),
		),
	)
	server.Use(middleware.RequestId())
	server.Use(middleware.RelayPanicRecover())
	server.Use(middleware.GracefulTracker())
	if config.EnablePrometheusMetrics {
		server.Use(middleware.PrometheusMiddleware())
	}

	router.SetRouter(server, ctl)

	port := config.ServerPort
	if port == "" {
		port = strconv.Itoa(*common.Port)
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info("server started", zap.String("address", "http://localhost:"+port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Logger.Info("shutdown signal received, draining requests")
	graceful.SetDraining()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := graceful.Drain(shutdownCtx); err != nil {
		logger.Logger.Warn("drain incomplete", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("server shutdown failed", zap.Error(err))
	}
	logger.Logger.Info("server stopped")
}
