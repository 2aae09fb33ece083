package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/config"
	"github.com/mrlokans/tolino-notes/internal/database"
	"github.com/mrlokans/tolino-notes/internal/database/notes"
	"github.com/mrlokans/tolino-notes/internal/exporters"
	http_controllers "github.com/mrlokans/tolino-notes/internal/http"
	"github.com/mrlokans/tolino-notes/internal/logging"
	"github.com/mrlokans/tolino-notes/internal/scheduler"
	"github.com/mrlokans/tolino-notes/internal/services"
	"github.com/mrlokans/tolino-notes/internal/tolino"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger logrus.FieldLogger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.WithField("timeout", timeout).Info("Shutdown server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server shutdown")
	}

	logger.Info("Server exiting")
}

// newWatchScheduler builds the background converter used when WATCH_ENABLED is set.
func newWatchScheduler(cfg *config.Config, service *services.ConvertService, logger logrus.FieldLogger) (*scheduler.ConvertScheduler, error) {
	format, err := exporters.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, err
	}
	exporter := exporters.NewFileExporter(cfg.Export.OutputDir, format, logger)
	return scheduler.NewConvertScheduler(service, exporter, cfg.Export.InputFile, cfg.Watch.Schedule, logger), nil
}

func Run(cfg *config.Config, version string) {
	logger, err := logging.Setup(cfg.Log, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.WithField("version", version).Info("Starting Tolino Notes")

	languages, err := tolino.LanguagesFor(cfg.Export.Languages)
	if err != nil {
		logger.WithError(err).Fatal("Invalid LANGUAGES")
	}
	logger.WithField("languages", languages.Tags()).Info("Note languages enabled")

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("Error closing database")
		}
	}()

	repo := notes.NewRepository(db.DB)
	service := services.NewConvertService(languages, logger)

	var watch *scheduler.ConvertScheduler
	if cfg.Watch.Enabled {
		watch, err = newWatchScheduler(cfg, service, logger)
		if err != nil {
			logger.WithError(err).Fatal("Invalid watch configuration")
		}
		if err := watch.Start(context.Background()); err != nil {
			logger.WithError(err).Fatal("Failed to start watch scheduler")
		}
		go watch.RunNow()
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:  db,
		Books:     repo,
		NoteStore: repo,
		Imports:   repo,
		Stats:     repo,
		Converter: service,
		Version:   version,
	})

	onShutdown := func(ctx context.Context) {
		if watch != nil {
			watch.Stop()
		}
	}

	Serve(router, cfg, logger, onShutdown)
}
