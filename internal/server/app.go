// Package server initializes and runs the prediction service. It opens
// the database, runs migrations, loads the classifier artifact, selects
// the identity strategy, and starts the HTTP server with graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/logging"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/auth"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/config"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/httpapi"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/inference"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/repomanager"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.HTTPServer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(log)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// The server must not come up without a model.
	classifier, err := loadClassifier(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("classifier load error: %w", err)
	}

	userService := services.NewUserService(db, rm)
	predictionService := services.NewPredictionService(db, rm, classifier)

	var provider auth.Provider
	var issuer *auth.Local
	switch cfg.AuthMode {
	case config.AuthModeAnonymous:
		logger.Warn(ctx, "anonymous auth mode: prediction history is globally visible")
		provider = auth.Anonymous{}
	case config.AuthModeLocal:
		local := auth.NewLocal(userService, cfg.SecretKey, cfg.AccessTokenValidityDuration)
		provider = local
		issuer = local
	case config.AuthModeFederated:
		provider = auth.NewFederated(cfg.UserInfoEndpoint)
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.AuthMode)
	}

	opts := httpapi.Options{
		Address:     cfg.EndpointAddr,
		Logger:      logger,
		Users:       userService,
		Predictions: predictionService,
		Provider:    provider,
		AuthMode:    cfg.AuthMode,
		CORSOrigin:  cfg.CORSOrigin,
	}
	if issuer != nil {
		opts.Issuer = issuer
	}

	return &App{
		config:     cfg,
		logger:     logger,
		httpServer: httpapi.NewHTTPServer(opts),
	}, nil
}

// loadClassifier prefers object storage when a model key is configured,
// otherwise reads the artifact from the local filesystem.
func loadClassifier(ctx context.Context, cfg *config.Config) (*inference.Classifier, error) {
	if cfg.ModelS3Key != "" {
		return inference.LoadS3(ctx, inference.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			Key:          cfg.ModelS3Key,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	}
	return inference.LoadFile(cfg.ModelPath)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
