// Package validation описывает правила для payload регистрации.
// Валидация не зависит от HTTP-слоя.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

const (
	namePattern  = `^[a-zA-Z\s]+$`
	phonePattern = `^[0-9]{10}$`

	// RFC 5321
	maxEmailLocalPart = 64

	// PasswordSpecialChars содержит допустимые спецсимволы пароля.
	PasswordSpecialChars = "@$!%*?&"
)

// passwordClasses: каждый класс символов обязан встретиться хотя бы раз.
var passwordClasses = []string{`[a-z]`, `[A-Z]`, `[0-9]`, `[@$!%*?&]`}

type stringRule struct {
	check   func(string) bool
	message string
}

type fieldSpec struct {
	name     string
	required string
	rules    []stringRule
}

func lengthRule(min, max, message string) stringRule {
	return stringRule{
		check:   func(s string) bool { return govalidator.StringLength(s, min, max) },
		message: message,
	}
}

func patternRule(pattern, message string) stringRule {
	return stringRule{
		check:   func(s string) bool { return govalidator.Matches(s, pattern) },
		message: message,
	}
}

func nameSpec(field, label string) fieldSpec {
	return fieldSpec{
		name:     field,
		required: label + " is required",
		rules: []stringRule{
			lengthRule("2", "50", label+" must be between 2 and 50 characters"),
			patternRule(namePattern, label+" can only contain letters and spaces"),
			{
				check:   func(s string) bool { return strings.TrimSpace(s) != "" },
				message: label + " cannot be blank",
			},
		},
	}
}

// порядок важен: нарушения возвращаются в этом порядке
var registrationSpecs = []fieldSpec{
	nameSpec(domain.FieldFirstName, "First name"),
	nameSpec(domain.FieldLastName, "Last name"),
	{
		name:     domain.FieldEmail,
		required: "Email is required",
		rules: []stringRule{
			lengthRule("3", "254", "Email must be between 3 and 254 characters"),
			{check: emailLocalPartFits, message: "Email local part must not exceed 64 characters"},
			{check: govalidator.IsEmail, message: "Please provide a valid email address"},
		},
	},
	{
		name:     domain.FieldPhoneNo,
		required: "Phone number is required",
		rules: []stringRule{
			patternRule(phonePattern, "Phone number must be exactly 10 digits"),
		},
	},
	{
		name:     domain.FieldCreatePassword,
		required: "Password is required",
		rules: []stringRule{
			lengthRule("6", "128", "Password must be between 6 and 128 characters"),
			{
				check: IsStrongPassword,
				message: "Password must contain at least one uppercase letter, one lowercase letter, " +
					"one number and one special character (" + PasswordSpecialChars + ")",
			},
		},
	},
	{
		name:     domain.FieldConfirmPassword,
		required: "Confirm password is required",
	},
}

func emailLocalPartFits(s string) bool {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return true
	}
	return utf8.RuneCountInString(s[:at]) <= maxEmailLocalPart
}

// IsStrongPassword проверяет наличие строчной, заглавной буквы, цифры и спецсимвола.
func IsStrongPassword(s string) bool {
	for _, class := range passwordClasses {
		if !govalidator.Matches(s, class) {
			return false
		}
	}
	return true
}

// ValidateRegistration проверяет payload регистрации.
// Возвращает либо нормализованный ввод, либо полный список нарушений, но не оба сразу.
// Проверка не останавливается на первой ошибке.
func ValidateRegistration(payload map[string]any) (domain.RegistrationInput, []domain.FieldError) {
	var violations []domain.FieldError
	values := make(map[string]string, len(registrationSpecs))

	for _, spec := range registrationSpecs {
		value, ok := stringField(payload, spec, &violations)
		if !ok {
			continue
		}
		values[spec.name] = value

		for _, rule := range spec.rules {
			if !rule.check(value) {
				violations = append(violations, domain.FieldError{Field: spec.name, Message: rule.message})
			}
		}
	}

	create, hasCreate := values[domain.FieldCreatePassword]
	if confirm, ok := values[domain.FieldConfirmPassword]; ok && hasCreate && confirm != create {
		violations = append(violations, domain.FieldError{
			Field:   domain.FieldConfirmPassword,
			Message: "Passwords do not match",
		})
	}

	if len(violations) > 0 {
		return domain.RegistrationInput{}, violations
	}

	return domain.RegistrationInput{
		FirstName:       values[domain.FieldFirstName],
		LastName:        values[domain.FieldLastName],
		Email:           values[domain.FieldEmail],
		PhoneNo:         values[domain.FieldPhoneNo],
		CreatePassword:  values[domain.FieldCreatePassword],
		ConfirmPassword: values[domain.FieldConfirmPassword],
	}, nil
}

// stringField достаёт строковое значение; отсутствие, null и "" считаются незаполненным полем.
func stringField(payload map[string]any, spec fieldSpec, violations *[]domain.FieldError) (string, bool) {
	raw, present := payload[spec.name]
	if !present || raw == nil {
		*violations = append(*violations, domain.FieldError{Field: spec.name, Message: spec.required})
		return "", false
	}

	value, isString := raw.(string)
	if !isString {
		*violations = append(*violations, domain.FieldError{Field: spec.name, Message: spec.name + " must be a string"})
		return "", false
	}
	if value == "" {
		*violations = append(*violations, domain.FieldError{Field: spec.name, Message: spec.required})
		return "", false
	}
	return value, true
}
