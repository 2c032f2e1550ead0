package ports

//go:generate mockgen -source=message_queue.go -destination=mocks/message_queue.go -package=mocks

import (
	"context"

	"github.com/GoArmGo/UserRegistry/internal/messaging/payloads"
)

// UserEventPublisher публикует события о регистрации пользователей
// используется usecase после успешного создания записи
type UserEventPublisher interface {
	PublishUserRegistered(ctx context.Context, payload payloads.UserRegisteredPayload) error
}

// UserEventConsumer определяет методы для потребления событий о регистрации
// будет использоваться воркером для получения задач из очереди
type UserEventConsumer interface {
	// StartConsumingUserRegistered начинает прослушивание очереди
	// принимает функцию-обработчик, которая будет вызываться для каждого полученного сообщения
	StartConsumingUserRegistered(ctx context.Context, handler func(context.Context, payloads.UserRegisteredPayload) error) error
}
