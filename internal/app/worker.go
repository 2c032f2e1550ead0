package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/UserRegistry/internal/core/ports"
	"github.com/GoArmGo/UserRegistry/internal/messaging/payloads"
)

var errNoConsumer = errors.New("worker mode requires RABBITMQ_URL")

// auditHandler пишет строку аудита на каждую регистрацию
func auditHandler(logger *slog.Logger) func(context.Context, payloads.UserRegisteredPayload) error {
	return func(_ context.Context, payload payloads.UserRegisteredPayload) error {
		logger.Info("audit: user registered",
			"user_id", payload.UserID,
			"email", payload.Email,
			"registered_at", payload.RegisteredAt,
		)
		return nil
	}
}

// runWorker запускает потребителя RabbitMQ и блокируется до отмены ctx
func runWorker(ctx context.Context, consumer ports.UserEventConsumer, logger *slog.Logger) error {
	if consumer == nil {
		return errNoConsumer
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingUserRegistered(workerCtx, auditHandler(logger)); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	logger.Info("worker started, waiting for user registered events")

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}
