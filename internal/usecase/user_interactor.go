package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserRegistry/internal/core/ports"
	"github.com/GoArmGo/UserRegistry/internal/domain"
	"github.com/GoArmGo/UserRegistry/internal/messaging/payloads"
	"github.com/GoArmGo/UserRegistry/internal/metrics"
	"github.com/GoArmGo/UserRegistry/internal/security"
	"github.com/GoArmGo/UserRegistry/internal/validation"
)

// Options содержит параметры userUseCase, не связанные с зависимостями
type Options struct {
	StoreTimeout time.Duration
	BcryptCost   int
}

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	publisher   ports.UserEventPublisher
	metrics     *metrics.Metrics
	opts        Options
	logger      *slog.Logger
	now         func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase.
// publisher и m могут быть nil.
func NewUserUseCase(
	userStorage ports.UserStorage,
	publisher ports.UserEventPublisher,
	m *metrics.Metrics,
	opts Options,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		publisher:   publisher,
		metrics:     m,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *userUseCase) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opts.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.opts.StoreTimeout)
}

// Register регистрирует нового пользователя
func (uc *userUseCase) Register(ctx context.Context, payload map[string]any) (*domain.User, error) {
	// 1. Валидация
	input, violations := validation.ValidateRegistration(payload)
	if len(violations) > 0 {
		uc.metrics.ObserveRegistration(metrics.OutcomeValidationFailed)
		uc.logger.Info("registration rejected by validation", "violations", len(violations))
		return nil, &domain.ValidationError{Violations: violations}
	}

	// 2. Проверка существующей записи по email или телефону
	findCtx, cancel := uc.storeContext(ctx)
	existing, err := uc.userStorage.FindByEmailOrPhone(findCtx, input.Email, input.PhoneNo)
	cancel()
	if err != nil {
		uc.metrics.ObserveRegistration(metrics.OutcomeError)
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}

	// 3. Конфликт: email важнее телефона
	if existing != nil {
		field := domain.FieldPhoneNo
		if existing.Email == input.Email {
			field = domain.FieldEmail
		}
		uc.metrics.ObserveRegistration(metrics.OutcomeConflict)
		uc.logger.Info("registration conflict", "field", field)
		return nil, domain.NewConflictError(field)
	}

	// 4. Хэшируем пароль и сохраняем
	hash, err := security.HashPassword(input.CreatePassword, uc.opts.BcryptCost)
	if err != nil {
		uc.metrics.ObserveRegistration(metrics.OutcomeError)
		return nil, fmt.Errorf("usecase: ошибка хэширования пароля: %w", err)
	}

	// общая точность хранилищ: BSON datetime хранит миллисекунды, TIMESTAMPTZ микросекунды
	now := uc.now().UTC().Truncate(time.Millisecond)
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PhoneNo:      input.PhoneNo,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	createCtx, cancel := uc.storeContext(ctx)
	err = uc.userStorage.Create(createCtx, user)
	cancel()
	if err != nil {
		// 5. Гонка: другой запрос успел записать ту же запись после проверки
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			uc.metrics.ObserveRegistration(metrics.OutcomeConflict)
			uc.logger.Info("registration lost unique race", "field", conflict.Field)
			return nil, conflict
		}
		uc.metrics.ObserveRegistration(metrics.OutcomeError)
		return nil, fmt.Errorf("usecase: ошибка при сохранении пользователя: %w", err)
	}

	user.PasswordHash = ""
	uc.metrics.ObserveRegistration(metrics.OutcomeCreated)
	uc.logger.Info("user registered", "user_id", user.ID)

	// 6. Событие публикуется без гарантий: ошибка только логируется
	uc.publishRegistered(ctx, user)

	return user, nil
}

func (uc *userUseCase) publishRegistered(ctx context.Context, user *domain.User) {
	if uc.publisher == nil {
		return
	}
	pubCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	err := uc.publisher.PublishUserRegistered(pubCtx, payloads.UserRegisteredPayload{
		UserID:       user.ID,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	})
	if err != nil {
		uc.logger.Warn("failed to publish user registered event", "user_id", user.ID, "error", err)
	}
}

// ListUsers возвращает всех пользователей
func (uc *userUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	listCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	users, err := uc.userStorage.ListAll(listCtx)
	if err != nil {
		uc.metrics.ObserveListing(metrics.OutcomeError)
		return nil, fmt.Errorf("usecase: ошибка при получении пользователей: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	for i := range users {
		users[i].PasswordHash = ""
	}

	uc.metrics.ObserveListing(metrics.OutcomeOK)
	uc.logger.Debug("users listed", "count", len(users))
	return users, nil
}
