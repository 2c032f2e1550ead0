package payloads

import (
	"time"

	"github.com/google/uuid"
)

// UserRegisteredPayload описывает событие об успешной регистрации, публикуется в RabbitMQ.
// Пароль и его хэш сюда не попадают.
type UserRegisteredPayload struct {
	UserID       uuid.UUID `json:"userId"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}
