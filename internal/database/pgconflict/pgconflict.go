// Package pgconflict переводит ошибки уникальности PostgreSQL в доменный конфликт.
package pgconflict

import (
	"errors"

	"github.com/lib/pq"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

// Имена ограничений из миграции 000001_create_users_table.
const (
	EmailConstraint = "users_email_key"
	PhoneConstraint = "users_phone_no_key"
)

var constraintFields = map[string]string{
	EmailConstraint: domain.FieldEmail,
	PhoneConstraint: domain.FieldPhoneNo,
}

// FromError возвращает *domain.ConflictError, если err является нарушением уникального
// ограничения таблицы users, иначе nil.
func FromError(err error) *domain.ConflictError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}
	field, ok := constraintFields[pqErr.Constraint]
	if !ok {
		return nil
	}
	return domain.NewConflictError(field)
}
