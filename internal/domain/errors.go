package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict означает нарушение уникальности email или phoneNo.
var ErrConflict = errors.New("conflict")

// FieldError описывает одно нарушение правила для конкретного поля.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError содержит полный список нарушений, не только первое.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConflictError: уникальное ограничение нарушено полем Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError возвращает ConflictError для поля field.
func NewConflictError(field string) *ConflictError {
	return &ConflictError{Field: field}
}

// ConflictMessage возвращает сообщение для клиента по имени поля.
func ConflictMessage(field string) string {
	switch field {
	case FieldEmail:
		return "Email is already registered"
	case FieldPhoneNo:
		return "Phone number is already registered"
	default:
		return "Value is already registered"
	}
}
