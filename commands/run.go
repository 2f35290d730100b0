package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/appforge-ci/deployer/generator"
	"github.com/appforge-ci/deployer/hosting"
	"github.com/appforge-ci/deployer/ledger"
	"github.com/appforge-ci/deployer/notifier"
	"github.com/appforge-ci/deployer/request"
	"github.com/appforge-ci/deployer/server"
)

func Run(ctx *cli.Context) error {
	bindAddress := ctx.String("listen-address")
	userSecret := ctx.String("user-secret")
	githubToken := ctx.String("github-token")
	githubAPIURL := ctx.String("github-api-url")
	openAIKey := ctx.String("openai-api-key")
	openAIBaseURL := ctx.String("openai-base-url")
	openAIModel := ctx.String("openai-model")
	defaultEvalURL := ctx.String("default-evaluation-url")
	ledgerMode := ctx.String("ledger-storage-mode")
	isDevelopment := os.Getenv("DEPLOYER_DEV") == "true"

	var logger *zap.Logger
	var err error
	if isDevelopment {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.Development = true
		logger, err = config.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	store, err := ledger.Initialize(ledgerMode, ctx)
	if err != nil {
		logger.Error("Failed initializing ledger storage", zap.Error(err))
		return err
	}

	led, err := ledger.New(store)
	if err != nil {
		logger.Error("Failed loading deployment ledger", zap.Error(err))
		return err
	}

	// Missing credentials are never fatal; each backend degrades on its
	// own and /health reports it as unavailable.
	if userSecret == "" {
		logger.Warn("No user secret configured, accepting requests without one")
	}
	if openAIKey == "" {
		logger.Warn("No generation API key configured, deployments will use the fallback document")
	}

	var hostingClient hosting.Client
	if githubToken == "" {
		logger.Warn("No hosting token configured, running in degraded mode")
	} else {
		hostingClient, err = hosting.New(githubAPIURL, githubToken)
		if err != nil {
			logger.Warn("Failed authenticating against hosting service, running in degraded mode", zap.Error(err))
			hostingClient = nil
		}
	}

	generatorClient := generator.New(generator.Opts{
		BaseURL: openAIBaseURL,
		APIKey:  openAIKey,
		Model:   openAIModel,
	})

	srv := server.New(server.Opts{
		BindAddress: bindAddress,
		Secret:      userSecret,
		Defaults: request.Defaults{
			Secret:        userSecret,
			Email:         request.DefaultEmail,
			EvaluationURL: defaultEvalURL,
		},
		Hosting:   hostingClient,
		Generator: generatorClient,
		Ledger:    led,
		Notifier:  notifier.New(),
	})

	signalChan := make(chan os.Signal, 10)
	signal.Notify(signalChan, os.Interrupt)
	go func() {
		stopping := false
		for {
			<-signalChan
			if !stopping {
				stopping = true
				logger.Info("Received interrupt signal. Will exit once in-flight requests are finished")
				go func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			} else {
				logger.Info("If you insist... Received second interrupt signal. Forcefully exiting.")
				logger.Warn("Forcefully exiting. In-flight deployments may be left unrecorded on the ledger.")
				os.Exit(0)
			}
		}
	}()

	if err = srv.Run(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server stopped", zap.Error(err))
		return err
	}

	logger.Info("See you later!")

	return nil
}
