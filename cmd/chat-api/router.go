// Package main provides the API router and application wiring.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/junglore/chat-engine/cmd/chat-api/handlers"
	"github.com/junglore/chat-engine/cmd/chat-api/middleware"
	"github.com/junglore/chat-engine/internal/cache"
	"github.com/junglore/chat-engine/internal/chat"
	"github.com/junglore/chat-engine/internal/config"
	"github.com/junglore/chat-engine/internal/genai"
	"github.com/junglore/chat-engine/internal/history"
	"github.com/junglore/chat-engine/internal/intent"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// App owns the wired dependency graph: databases, cache, generative
// backend, the reply engine, and the HTTP handlers on top of them.
type App struct {
	cfg      *config.Config
	logger   *observability.Logger
	db       *sql.DB
	packages *storage.PackageStore
	cache    cache.Client
	router   http.Handler
}

// NewApp builds the full application from configuration.
func NewApp(cfg *config.Config, logger *observability.Logger) (*App, error) {
	ctx := context.Background()

	// Relational store: users, sessions, published content.
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	users := storage.NewUserRepository(db)
	sessions := storage.NewSessionRepository(db)
	articles := storage.NewArticleRepository(db)

	// Document store: expedition packages.
	packages, err := storage.NewPackageStore(ctx, storage.PackageStoreConfig{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect package store: %w", err)
	}

	// Cache in front of session history.
	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	completer, err := genai.NewClient(genai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create generative client: %w", err)
	}

	hist := history.NewStore(sessions, cacheClient, cfg.Cache.HistoryTTL, cfg.Chat.HistoryLimit, logger)
	suggester := chat.NewSuggester(completer, packages, cfg.Chat.MaxPackagesToSearch, logger)
	engine := chat.NewEngine(
		intent.NewClassifier(),
		chat.NewExpeditionResolver(packages, cfg.Chat.ExpeditionSiteURL, cfg.Chat.MaxPackagesToSearch, cfg.Chat.MaxParksListed, logger),
		chat.NewContentResolver(articles, cfg.Chat.MaxContentResults, logger),
		suggester,
		completer,
		hist,
		cfg.Chat.ContentSiteURL,
		logger,
	)

	app := &App{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		packages: packages,
		cache:    cacheClient,
	}
	app.router = app.buildRouter(engine, suggester, users, sessions, packages)
	return app, nil
}

// Router returns the HTTP handler for the application.
func (a *App) Router() http.Handler {
	return a.router
}

// Close releases all held connections.
func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Postgres close failed")
	}
	if err := a.packages.Close(context.Background()); err != nil {
		a.logger.Warn().Err(err).Msg("Package store close failed")
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Cache close failed")
	}
}

func (a *App) buildRouter(
	engine *chat.Engine,
	suggester *chat.Suggester,
	users *storage.UserRepository,
	sessions *storage.SessionRepository,
	packages *storage.PackageStore,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(a.cfg.Server.WriteTimeout))

	userHandler := handlers.NewUserHandler(a.logger, users)
	sessionHandler := handlers.NewSessionHandler(a.logger, sessions, engine)
	packageHandler := handlers.NewPackageHandler(a.logger, packages, suggester)
	healthHandler := handlers.NewHealthHandler(a.logger, a.db, packages, a.cache)

	r.Get("/health", healthHandler.Live)
	r.Get("/health/db", healthHandler.Dependencies)

	r.Post("/users", userHandler.Create)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Get("/", sessionHandler.List)
		r.Get("/{sessionID}/history", sessionHandler.History)
		r.Post("/{sessionID}/message", sessionHandler.SendMessage)
	})

	r.Get("/packages/{packageID}/details", packageHandler.Details)

	return r
}
