package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/config"
	"github.com/marberan/tastemix/internal/handlers"
	"github.com/marberan/tastemix/internal/middleware"
	"github.com/marberan/tastemix/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	services, err := services.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = services

	app.handlers, err = handlers.New(app.logger, services)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.services.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing services")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(a.config))
	router.Use(middleware.Metrics())

	// Health and metrics endpoints stay outside auth.
	router.GET("/health", a.handlers.Health.Get)
	router.GET("/ready", a.handlers.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		if a.config.Auth.Enabled {
			api.Use(middleware.Auth(a.services.Auth, a.logger))
		}

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:userId", a.handlers.Recommendation.Get)
		}

		catalog := api.Group("/catalog")
		{
			catalog.POST("/:domain", a.handlers.Catalog.Post)
			catalog.GET("/:domain/items/:itemId/similar", a.handlers.Recommendation.Similar)
		}

		api.POST("/feedback", a.handlers.Feedback.Post)
	}

	a.router = router
}
