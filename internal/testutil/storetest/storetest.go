// Package storetest содержит общий набор проверок для реализаций ports.UserStorage.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/GoArmGo/UserRegistry/internal/core/ports"
	"github.com/GoArmGo/UserRegistry/internal/domain"
)

// UserStorageSuite проверяет контракт хранилища. Встраивается в suite конкретной реализации,
// которая заполняет Store и Reset.
type UserStorageSuite struct {
	suite.Suite
	Store ports.UserStorage
	Reset func(ctx context.Context) error
}

func (s *UserStorageSuite) SetupTest() {
	if s.Reset != nil {
		s.Require().NoError(s.Reset(context.Background()))
	}
}

// NewUser возвращает валидную запись с заданными email и телефоном.
func NewUser(email, phone string) *domain.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.User{
		ID:           uuid.New(),
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PhoneNo:      phone,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *UserStorageSuite) TestFindByEmailOrPhone() {
	ctx := context.Background()
	byEmail := NewUser("jane@example.com", "1111111111")
	byPhone := NewUser("john@example.com", "2222222222")
	s.Require().NoError(s.Store.Create(ctx, byEmail))
	s.Require().NoError(s.Store.Create(ctx, byPhone))

	found, err := s.Store.FindByEmailOrPhone(ctx, "none@example.com", "9999999999")
	s.Require().NoError(err)
	s.Nil(found)

	found, err = s.Store.FindByEmailOrPhone(ctx, "none@example.com", "2222222222")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(byPhone.ID, found.ID)

	found, err = s.Store.FindByEmailOrPhone(ctx, "jane@example.com", "2222222222")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(byEmail.ID, found.ID)
	s.Empty(found.PasswordHash)
}

func (s *UserStorageSuite) TestCreateRejectsDuplicates() {
	ctx := context.Background()
	s.Require().NoError(s.Store.Create(ctx, NewUser("jane@example.com", "1111111111")))

	var conflict *domain.ConflictError
	err := s.Store.Create(ctx, NewUser("jane@example.com", "3333333333"))
	s.Require().ErrorAs(err, &conflict)
	s.Equal(domain.FieldEmail, conflict.Field)

	err = s.Store.Create(ctx, NewUser("other@example.com", "1111111111"))
	s.Require().ErrorAs(err, &conflict)
	s.Equal(domain.FieldPhoneNo, conflict.Field)
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *UserStorageSuite) TestListAllOmitsPasswords() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		u := NewUser(fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("100000000%d", i))
		u.CreatedAt = u.CreatedAt.Add(time.Duration(i) * time.Second)
		s.Require().NoError(s.Store.Create(ctx, u))
	}

	users, err := s.Store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	for i, u := range users {
		s.Equal(fmt.Sprintf("user%d@example.com", i), u.Email)
		s.Equal("Jane", u.FirstName)
		s.Empty(u.PasswordHash)
	}
}

func (s *UserStorageSuite) TestListAllEmpty() {
	users, err := s.Store.ListAll(context.Background())
	s.Require().NoError(err)
	s.NotNil(users)
	s.Empty(users)
}

// TestConcurrentUniqueEmailViolation: в гонке одинаковых email ровно один успех.
func (s *UserStorageSuite) TestConcurrentUniqueEmailViolation() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			err := s.Store.Create(ctx, NewUser("racer@example.com", fmt.Sprintf("20000000%02d", i)))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, domain.ErrConflict) {
				conflictCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")
}
