package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/UserRegistry/internal/database/pgconflict"
	"github.com/GoArmGo/UserRegistry/internal/domain"
)

// колонки без password_hash, для ответов наружу
const publicColumns = `id, first_name, last_name, email, phone_no, created_at, updated_at`

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// FindByEmailOrPhone ищет пользователя по email или телефону.
func (s *UserStorage) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	start := time.Now()

	// совпадение по email сортируется первым
	query := `
	SELECT ` + publicColumns + `
	FROM users
	WHERE email = $1 OR phone_no = $2
	ORDER BY (email = $1) DESC
	LIMIT 1
	`

	var user domain.User
	err := s.db.GetContext(ctx, &user, query, email, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to find user by email or phone", "error", err)
		return nil, fmt.Errorf("select user by email or phone: %w", err)
	}

	s.logger.Debug("user found by email or phone",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

// Create сохраняет пользователя; уникальность email и phone_no обеспечивает сама БД.
func (s *UserStorage) Create(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
	INSERT INTO users (id, first_name, last_name, email, phone_no, password_hash, created_at, updated_at)
	VALUES (:id, :first_name, :last_name, :email, :phone_no, :password_hash, :created_at, :updated_at)
	`

	if _, err := s.db.NamedExecContext(ctx, query, user); err != nil {
		if conflict := pgconflict.FromError(err); conflict != nil {
			s.logger.Warn("unique constraint rejected user insert", "field", conflict.Field)
			return conflict
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user saved successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListAll получает всех пользователей без хэшей паролей
func (s *UserStorage) ListAll(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	q := `SELECT ` + publicColumns + ` FROM users ORDER BY created_at ASC, id ASC`

	users := []domain.User{}
	if err := s.db.SelectContext(ctx, &users, q); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("select users: %w", err)
	}

	s.logger.Info("listed users successfully",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}
