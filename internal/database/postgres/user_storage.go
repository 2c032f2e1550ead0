package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoArmGo/UserRegistry/internal/database/pgconflict"
	"github.com/GoArmGo/UserRegistry/internal/domain"
)

var publicColumns = []string{"id", "first_name", "last_name", "email", "phone_no", "created_at", "updated_at"}

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// OpenGorm открывает GORM поверх уже установленного соединения (схему создаёт golang-migrate)
func OpenGorm(conn *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: conn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации GORM: %w", err)
	}
	return db, nil
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// FindByEmailOrPhone ищет пользователя по email или телефону с помощью GORM
func (s *GormUserStorage) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).
		Select(publicColumns).
		Where("email = ? OR phone_no = ?", email, phone).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "(email = ?) DESC",
			Vars:               []interface{}{email},
			WithoutParentheses: true,
		}}).
		Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to find user by email or phone", "error", result.Error)
		return nil, fmt.Errorf("ошибка при поиске пользователя с помощью GORM: %w", result.Error)
	}
	return &user, nil
}

// Create сохраняет пользователя с помощью GORM
func (s *GormUserStorage) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if conflict := pgconflict.FromError(result.Error); conflict != nil {
			s.logger.Warn("unique constraint rejected user insert", "field", conflict.Field)
			return conflict
		}
		s.logger.Error("failed to insert user", "error", result.Error)
		return fmt.Errorf("ошибка при сохранении пользователя с помощью GORM: %w", result.Error)
	}

	s.logger.Info("user saved successfully (gorm)", "user_id", user.ID)
	return nil
}

// ListAll получает всех пользователей с помощью GORM; password_hash не выбирается
func (s *GormUserStorage) ListAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	result := s.db.WithContext(ctx).
		Select(publicColumns).
		Order("created_at ASC, id ASC").
		Find(&users)
	if result.Error != nil {
		s.logger.Error("failed to list users", "error", result.Error)
		return nil, fmt.Errorf("ошибка при получении пользователей с помощью GORM: %w", result.Error)
	}
	return users, nil
}
