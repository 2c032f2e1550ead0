package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/UserRegistry/internal/app"
	"github.com/GoArmGo/UserRegistry/internal/config"
	"github.com/GoArmGo/UserRegistry/internal/core/ports"
	"github.com/GoArmGo/UserRegistry/internal/database/client"
	"github.com/GoArmGo/UserRegistry/internal/database/memory"
	"github.com/GoArmGo/UserRegistry/internal/database/mongodb"
	"github.com/GoArmGo/UserRegistry/internal/database/postgres"
	"github.com/GoArmGo/UserRegistry/internal/database/storage"
	"github.com/GoArmGo/UserRegistry/internal/handler"
	"github.com/GoArmGo/UserRegistry/internal/logger"
	"github.com/GoArmGo/UserRegistry/internal/messaging"
	"github.com/GoArmGo/UserRegistry/internal/metrics"
	"github.com/GoArmGo/UserRegistry/internal/rabbitmq"
	"github.com/GoArmGo/UserRegistry/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// В режиме worker хранилище и HTTP-роутер не создаются.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []app.Closer
	fail := func(err error) (*app.App, error) {
		_ = app.NewApp(cfg, slogger, nil, nil, closers...).Shutdown()
		return nil, err
	}

	// 2. RabbitMQ необязателен
	var rabbitClient *rabbitmq.Client
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitClient, err = rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, app.Closer{Name: "rabbitmq", Close: func() error {
			rabbitClient.Close()
			return nil
		}})
	}

	if mode == app.ModeWorker {
		var consumer ports.UserEventConsumer
		if rabbitClient != nil {
			consumer = rabbitClient
		}
		slogger.Info("all dependencies initialized", "mode", mode)
		return app.NewApp(cfg, slogger, nil, consumer, closers...), nil
	}

	// 3. Хранилище пользователей
	userStorage, storeClosers, err := buildStorage(ctx, cfg, slogger)
	closers = append(closers, storeClosers...)
	if err != nil {
		return fail(err)
	}

	// 4. Publisher
	var publisher ports.UserEventPublisher = messaging.NewNopPublisher(slogger)
	if rabbitClient != nil {
		publisher = rabbitClient
	}

	// 5. Бизнес-логика и HTTP
	m := metrics.New()
	userUseCase := usecase.NewUserUseCase(userStorage, publisher, m, usecase.Options{
		StoreTimeout: cfg.StoreTimeout,
		BcryptCost:   cfg.BcryptCost,
	}, slogger)

	router := handler.NewRouter(handler.NewUserHandler(userUseCase, slogger), m, handler.RouterOptions{
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, slogger)

	slogger.Info("all dependencies initialized", "mode", mode, "store_driver", cfg.StoreDriver)
	return app.NewApp(cfg, slogger, router, nil, closers...), nil
}

// buildStorage создает хранилище по STORE_DRIVER.
// Возвращенные closers нужно закрыть даже при ошибке.
func buildStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.UserStorage, []app.Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory user storage, data is lost on restart")
		return memory.NewUserStorage(logger), nil, nil

	case config.DriverPostgres, config.DriverGorm:
		dbClient, err := client.NewClient(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closers := []app.Closer{{Name: "postgres", Close: dbClient.Close}}
		if cfg.StoreDriver == config.DriverPostgres {
			return storage.NewUserStorage(dbClient.DB, logger), closers, nil
		}
		gormDB, err := postgres.OpenGorm(dbClient.DB.DB)
		if err != nil {
			return nil, closers, err
		}
		return postgres.NewGormUserStorage(gormDB, logger), closers, nil

	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()

		mongoClient, err := mongodb.NewClient(connectCtx, cfg.Mongo.URI, logger)
		if err != nil {
			return nil, nil, err
		}
		closers := []app.Closer{{Name: "mongo", Close: mongoClient.Close}}
		userStorage := mongodb.NewUserStorage(mongoClient.Collection(cfg.Mongo.Database, cfg.Mongo.Collection), logger)
		if err := userStorage.EnsureIndexes(connectCtx); err != nil {
			return nil, closers, err
		}
		return userStorage, closers, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
