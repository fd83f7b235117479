package service

import "fmt"

// здесь происходит проверка ошибок бизнес-логики

type ResourceType string

const (
	ResourceProject ResourceType = "Проект"
	ResourceTask    ResourceType = "Задача"
	ResourceUser    ResourceType = "Пользователь"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(resource ResourceType, id string) *BusinessError {
	return &BusinessError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewEmailTaken(email string) *BusinessError {
	return &BusinessError{
		Code:    "EMAIL_TAKEN",
		Message: fmt.Sprintf("Пользователь с email %s уже существует", email),
		Details: map[string]any{
			"email": email,
		},
	}
}

func NewInvalidCredentials() *BusinessError {
	return &BusinessError{
		Code:    "INVALID_CREDENTIALS",
		Message: "Неверный email или пароль",
		Details: map[string]any{},
	}
}
