// Package main is the entrypoint for the Foodgram API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/foodgram/foodgram/internal/cache"
	"github.com/foodgram/foodgram/internal/config"
	"github.com/foodgram/foodgram/internal/handler"
	"github.com/foodgram/foodgram/internal/metrics"
	"github.com/foodgram/foodgram/internal/middleware"
	"github.com/foodgram/foodgram/internal/repository"
	"github.com/foodgram/foodgram/internal/server"
	"github.com/foodgram/foodgram/internal/service"
	"github.com/foodgram/foodgram/internal/storage"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL())),
			slog.String("database_url", redactURL(cfg.DatabaseURL())),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize media storage
	media, err := storage.NewMediaStore(cfg.MediaRoot)
	if err != nil {
		logger.Error("failed to prepare media storage",
			slog.String("error", err.Error()),
			slog.String("media_root", cfg.MediaRoot),
		)
		os.Exit(1)
	}

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, cacheClient, cfg.SecretKey, metricsRecorder)
	recipeService := service.NewRecipeService(repo, media, metricsRecorder)
	subscriptionService := service.NewSubscriptionService(repo)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, subscriptionService, repo, cfg.BaseURL, cfg.PageSize, logger)
	tokenHandler := handler.NewTokenHandler(userService, logger)
	tagHandler := handler.NewTagHandler(repo, cacheClient, logger)
	ingredientHandler := handler.NewIngredientHandler(repo, logger)
	recipeHandler := handler.NewRecipeHandler(recipeService, userService, repo, cfg.BaseURL, cfg.PageSize, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:        h,
		health:      healthHandler,
		users:       userHandler,
		tokens:      tokenHandler,
		tags:        tagHandler,
		ingredients: ingredientHandler,
		recipes:     recipeHandler,
		repo:        repo,
		cache:       cacheClient,
		cfg:         cfg,
		logger:      logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base        *handler.Handler
	health      *handler.HealthHandler
	users       *handler.UserHandler
	tokens      *handler.TokenHandler
	tags        *handler.TagHandler
	ingredients *handler.IngredientHandler
	recipes     *handler.RecipeHandler
	repo        *repository.Repository
	cache       *cache.Cache
	cfg         *config.Config
	logger      *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: d.cfg.IsDevelopment(),
		AllowedHosts:  d.cfg.GetAllowedHosts(),
	}))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))
	// Clients built against the original API send trailing slashes
	r.Use(chimiddleware.StripSlashes)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)

	// Root info endpoint
	r.Get("/", d.base.Hello)

	// Uploaded recipe images. Behind nginx this route is shadowed by a
	// static location; it matters for standalone runs.
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(d.cfg.MediaRoot)))
	r.Get("/media/*", fileServer.ServeHTTP)

	authCfg := middleware.AuthConfig{
		Logger:     d.logger,
		Repository: d.repo,
		Cache:      d.cache,
		SecretKey:  d.cfg.SecretKey,
	}
	requireAuth := middleware.Auth(authCfg)
	optionalAuth := middleware.OptionalAuth(authCfg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login", d.tokens.Login)
			r.With(requireAuth).Post("/logout", d.tokens.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", d.users.Register)
			r.With(optionalAuth).Get("/", d.users.List)
			r.With(requireAuth).Get("/me", d.users.Me)
			r.With(requireAuth).Post("/set_password", d.users.SetPassword)
			r.With(requireAuth).Get("/subscriptions", d.users.Subscriptions)
			r.With(optionalAuth).Get("/{id}", d.users.Get)
			r.With(requireAuth).Post("/{id}/subscribe", d.users.Subscribe)
			r.With(requireAuth).Delete("/{id}/subscribe", d.users.Unsubscribe)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", d.tags.List)
			r.Get("/{id}", d.tags.Get)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", d.ingredients.List)
			r.Get("/{id}", d.ingredients.Get)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.With(optionalAuth).Get("/", d.recipes.List)
			r.With(requireAuth).Post("/", d.recipes.Create)
			r.With(requireAuth).Get("/download_shopping_cart", d.recipes.DownloadShoppingCart)
			r.With(optionalAuth).Get("/{id}", d.recipes.Get)
			r.With(requireAuth).Patch("/{id}", d.recipes.Update)
			r.With(requireAuth).Delete("/{id}", d.recipes.Delete)
			r.With(requireAuth).Post("/{id}/favorite", d.recipes.Favorite)
			r.With(requireAuth).Delete("/{id}/favorite", d.recipes.Unfavorite)
			r.With(requireAuth).Post("/{id}/shopping_cart", d.recipes.AddToCart)
			r.With(requireAuth).Delete("/{id}/shopping_cart", d.recipes.RemoveFromCart)
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
