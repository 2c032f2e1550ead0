package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/UserRegistry/internal/config"
	"github.com/GoArmGo/UserRegistry/internal/core/ports"
)

// Режимы запуска
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

// Closer описывает ресурс, который нужно закрыть при завершении (БД, RabbitMQ, Mongo).
type Closer struct {
	Name  string
	Close func() error
}

type App struct {
	Config   *config.Config
	logger   *slog.Logger
	router   http.Handler
	consumer ports.UserEventConsumer
	closers  []Closer
}

// NewApp собирает приложение. consumer может быть nil, если RabbitMQ не настроен.
func NewApp(cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	consumer ports.UserEventConsumer,
	closers ...Closer) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		router:   router,
		consumer: consumer,
		closers:  closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.router, a.logger)
	case ModeWorker:
		err = runWorker(ctx, a.consumer, a.logger)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown finished with errors", "error", closeErr)
	}

	return err
}

// Shutdown закрывает все ресурсы приложения в обратном порядке
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ошибка закрытия %s: %w", c.Name, err))
			continue
		}
		a.logger.Info("resource closed", "resource", c.Name)
	}
	a.closers = nil
	return errors.Join(errs...)
}
