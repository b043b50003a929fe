package app

import (
	"pillar2/config"
	"pillar2/internal/database"
	"pillar2/internal/generator"
	"pillar2/internal/handlers/middleware"
	"pillar2/internal/logger"
	"pillar2/internal/repositories"
	"pillar2/internal/services"
	"pillar2/internal/websockets"
	"time"

	sessionController "pillar2/internal/controllers/session"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	SessionRepo repositories.SessionRepository

	// Controllers
	SessionController *sessionController.SessionController
}

func NewWithConfig(config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	sessionRepo := repositories.NewSession(db)

	websocket := websockets.New()

	// Initialize controllers with repositories and services
	gen := generator.New(generator.NewFakerSource(config.GeneratorSeed))
	sessionController := sessionController.New(
		sessionRepo,
		transactionService,
		gen,
		websocket,
		time.Now,
		config.SessionTTL(),
	)
	middleware := middleware.New(sessionController, config)

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		TransactionService: transactionService,
		SessionRepo:        sessionRepo,
		SessionController:  sessionController,
		Websocket:          websocket,
	}

	if err := app.validate(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	if a.Websocket == nil || a.TransactionService == nil || a.SessionController == nil ||
		a.SessionRepo == nil {
		return log.ErrMsg("nil check failed")
	}

	return nil
}

func (a *App) Close() (err error) {
	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
