// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет зарегистрированного пользователя.
// Соответствует таблице 'users' (postgres) и коллекции 'users' (mongo).
// PasswordHash никогда не сериализуется в JSON.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PhoneNo      string    `json:"phoneNo" db:"phone_no"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RegistrationInput содержит нормализованный payload регистрации после валидации.
// Неизвестные поля к этому моменту уже отброшены.
type RegistrationInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	PhoneNo         string `json:"phoneNo"`
	CreatePassword  string `json:"-"`
	ConfirmPassword string `json:"-"`
}

// Имена полей так, как их видит клиент.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPhoneNo         = "phoneNo"
	FieldCreatePassword  = "createPassword"
	FieldConfirmPassword = "confirmPassword"
)
