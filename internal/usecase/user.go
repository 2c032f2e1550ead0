package usecase

import (
	"context"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

// UserUseCase определяет бизнес-логику регистрации и получения пользователей
type UserUseCase interface {
	// Register валидирует payload, проверяет уникальность email и телефона,
	// хэширует пароль и сохраняет пользователя.
	// Ошибки: *domain.ValidationError, *domain.ConflictError, иначе серверная ошибка.
	Register(ctx context.Context, payload map[string]any) (*domain.User, error)

	// ListUsers возвращает всех пользователей без хэша пароля
	ListUsers(ctx context.Context) ([]domain.User, error)
}
