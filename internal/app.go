package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cache_adapter "versus-web/internal/adapters/cache"
	consent_adapter "versus-web/internal/adapters/consent"
	logger_adapter "versus-web/internal/adapters/logger"
	"versus-web/internal/adapters/noop"
	postgres_adapter "versus-web/internal/adapters/postgres"
	rabbitmq_adapter "versus-web/internal/adapters/rabbitmq"
	"versus-web/internal/adapters/rest"
	"versus-web/internal/adapters/wordpress"
	"versus-web/internal/configs"
	"versus-web/internal/constants"
	"versus-web/internal/contracts"
	"versus-web/internal/core/port"
	"versus-web/internal/core/usecase"
	fluentlogger "versus-web/pkg/fluent_logger"
	"versus-web/pkg/postgres"
	pkgrabbitmq "versus-web/pkg/rabbitmq"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	redisClient   *redis.Client
	dbPool        *pgxpool.Pool
	leadPublisher *pkgrabbitmq.Publisher
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
// Redis, PostgreSQL и RabbitMQ необязательны: без них сайт работает
// без кэша, а заявки только пишутся в лог.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger = appLogger

	ctx := context.Background()

	// --- 2. ИСТОЧНИК КОНТЕНТА: WordPress -> кэш -> деградация ---
	var contentCache port.CachePort = cache_adapter.NoopCache{}
	if appConfig.Cache.RedisEnabled {
		rdb, err := cache_adapter.NewRedisClient(ctx, appConfig.Cache.RedisURL)
		if err != nil {
			appLogger.Error("Failed to connect to Redis, continuing without cache", err, nil)
		} else {
			redisCache, _ := cache_adapter.NewRedisCache(rdb)
			contentCache = redisCache
			app.redisClient = rdb
			appLogger.Info("Redis cache initialized.", port.Fields{"revalidate": appConfig.Cache.Revalidate.String()})
		}
	}

	wpClient := wordpress.NewClient(appConfig.WordPress.APIURL, appConfig.WordPress.Timeout)
	cachedSource := cache_adapter.NewCachedSource(wpClient, contentCache, appConfig.Cache.Revalidate)
	contentSource := wordpress.NewDegradingSource(cachedSource)
	appLogger.Info("Content source configured.", port.Fields{"wordpress_url": appConfig.WordPress.APIURL})

	// --- 3. ЗАЯВКИ: валидация, хранилище, события ---
	validator, err := contracts.NewValidator()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to compile json schemas: %w", err)
	}

	var leadRepository port.LeadRepositoryPort = noop.LeadRepository{}
	if appConfig.Database.URL != "" {
		dbPool, err := postgres.NewClient(ctx, postgres.Config{
			DatabaseURL:     appConfig.Database.URL,
			MaxConns:        4,
			MaxConnLifetime: time.Hour,
		})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			app.Close()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		app.dbPool = dbPool

		pgRepository, err := postgres_adapter.NewPostgresLeadRepository(dbPool)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create lead repository: %w", err)
		}
		if err := pgRepository.EnsureSchema(ctx); err != nil {
			appLogger.Error("Failed to prepare leads table", err, nil)
			app.Close()
			return nil, fmt.Errorf("failed to prepare leads table: %w", err)
		}
		leadRepository = pgRepository
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)
	} else {
		appLogger.Warn("DATABASE_URL is not set, leads will only be logged", nil)
	}

	var leadNotifier port.LeadNotifierPort = noop.LeadNotifier{}
	if appConfig.RabbitMQ.URL != "" {
		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		publisher, err := pkgrabbitmq.NewPublisher(pkgrabbitmq.PublisherConfig{
			URL:                      appConfig.RabbitMQ.URL,
			ExchangeName:             constants.LeadsExchange,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		})
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			app.Close()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		app.leadPublisher = publisher

		leadEvents, err := rabbitmq_adapter.NewLeadEventsAdapter(publisher, constants.RoutingKeyLeadCreated)
		if err != nil {
			app.Close()
			return nil, err
		}
		leadNotifier = leadEvents
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)
	}

	// --- 4. USE CASES ---
	findPropertiesUseCase := usecase.NewFindPropertiesUseCase(contentSource)
	getPropertyDetailsUseCase := usecase.NewGetPropertyDetailsUseCase(contentSource)
	listPostsUseCase := usecase.NewListPostsUseCase(contentSource)
	getPostUseCase := usecase.NewGetPostUseCase(contentSource)
	getHomeUseCase := usecase.NewGetHomeUseCase(contentSource)
	getTeamUseCase := usecase.NewGetTeamUseCase(contentSource)
	getLegalPageUseCase := usecase.NewGetLegalPageUseCase(contentSource)
	submitLeadUseCase := usecase.NewSubmitLeadUseCase(validator, leadRepository, leadNotifier)

	appLogger.Info("All use cases initialized.", nil)

	// --- 5. ВХОДЯЩИЕ АДАПТЕРЫ ---
	cookieSecure := appConfig.Rest.CookieSecure
	cookieSigning := consent_adapter.WithSigningKey(appConfig.Consent.SigningKey)
	if appConfig.Consent.SigningKey == "" {
		appLogger.Warn("CONSENT_SIGNING_KEY is not set, consent cookie will be unsigned", nil)
	}
	consentHandler := rest.NewConsentHandler(rest.ConsentSettings{
		Version:     appConfig.Consent.Version,
		BannerDelay: appConfig.Consent.BannerDelay,
		Validator:   validator,
		NewStorage: func(w http.ResponseWriter, r *http.Request) port.ConsentStoragePort {
			return consent_adapter.NewCookieStorage(w, r, cookieSecure, cookieSigning)
		},
	})

	renderer, err := rest.NewRenderer(appConfig.AppName, appConfig.Rest.SiteURL, consentHandler)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	handlers := rest.Handlers{
		Pages:      rest.NewPagesHandler(getHomeUseCase, getTeamUseCase, getLegalPageUseCase, renderer),
		Properties: rest.NewPropertiesHandler(findPropertiesUseCase, getPropertyDetailsUseCase, renderer),
		Blog:       rest.NewBlogHandler(listPostsUseCase, getPostUseCase, renderer),
		Leads:      rest.NewLeadHandler(submitLeadUseCase, renderer),
		Consent:    consentHandler,
		API:        rest.NewAPIHandler(findPropertiesUseCase),
	}
	app.apiServer = rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.CORSOrigins, handlers, baseLogger)
	appLogger.Info("REST server configured.", nil)

	return app, nil
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	cfg := a.config
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Fluent Bit логгер, если он включен в конфигурации
	if cfg.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, err
		}
		a.fluentClient = fluentClient
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, nil
}

// Run запускает HTTP-сервер и ждет сигнала на завершение.
func (a *App) Run() error {
	defer a.Close()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// Close освобождает внешние ресурсы. Безопасно вызывать на частично собранном App.
func (a *App) Close() {
	if a.leadPublisher != nil {
		if err := a.leadPublisher.Close(); err != nil {
			a.logError("Error closing event producer", err)
		}
		a.leadPublisher = nil
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logError("Error closing redis client", err)
		}
		a.redisClient = nil
	}

	if a.logger != nil {
		a.logger.Info("Application shut down gracefully.", nil)
	}

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent уже может быть недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

func (a *App) logError(msg string, err error) {
	if a.logger != nil {
		a.logger.Error(msg, err, nil)
		return
	}
	log.Printf("%s: %v", msg, err)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
