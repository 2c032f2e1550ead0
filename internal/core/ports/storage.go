package ports

//go:generate mockgen -source=storage.go -destination=mocks/storage.go -package=mocks

import (
	"context"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
type UserStorage interface {
	// FindByEmailOrPhone возвращает запись, совпадающую по email ИЛИ телефону.
	// Если совпадений по email и телефону несколько, приоритет у записи с таким email.
	// (nil, nil) означает, что совпадений нет.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)

	// Create сохраняет новую запись. Если уникальное ограничение сработало в момент записи,
	// возвращает *domain.ConflictError с именем поля.
	Create(ctx context.Context, user *domain.User) error

	// ListAll возвращает все записи без хэша пароля, старые первыми.
	ListAll(ctx context.Context) ([]domain.User, error)
}
