// Package memory хранит пользователей в памяти процесса (dev-режим и тесты).
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

// UserStorage хранит пользователей в порядке вставки.
// Индексы email и phone проверяются и обновляются под одной блокировкой,
// поэтому Create атомарен так же, как уникальный индекс в БД.
type UserStorage struct {
	mu      sync.RWMutex
	users   []domain.User
	byEmail map[string]int
	byPhone map[string]int
	logger  *slog.Logger
}

func NewUserStorage(logger *slog.Logger) *UserStorage {
	return &UserStorage{
		byEmail: make(map[string]int),
		byPhone: make(map[string]int),
		logger:  logger,
	}
}

func (s *UserStorage) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.byEmail[email]; ok {
		return s.publicCopy(i), nil
	}
	if i, ok := s.byPhone[phone]; ok {
		return s.publicCopy(i), nil
	}
	return nil, nil
}

func (s *UserStorage) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return domain.NewConflictError(domain.FieldEmail)
	}
	if _, taken := s.byPhone[user.PhoneNo]; taken {
		return domain.NewConflictError(domain.FieldPhoneNo)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	s.users = append(s.users, *user)
	idx := len(s.users) - 1
	s.byEmail[user.Email] = idx
	s.byPhone[user.PhoneNo] = idx

	s.logger.Info("user saved successfully (memory)", "user_id", user.ID)
	return nil
}

func (s *UserStorage) ListAll(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for i := range s.users {
		users = append(users, *s.publicCopy(i))
	}
	return users, nil
}

func (s *UserStorage) publicCopy(i int) *domain.User {
	u := s.users[i]
	u.PasswordHash = ""
	return &u
}
