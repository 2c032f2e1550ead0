package messaging

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/UserRegistry/internal/messaging/payloads"
)

// NopPublisher используется, когда RABBITMQ_URL не задан: событие только логируется
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishUserRegistered(_ context.Context, payload payloads.UserRegisteredPayload) error {
	p.logger.Debug("event publishing disabled, user registered event dropped", "user_id", payload.UserID)
	return nil
}
