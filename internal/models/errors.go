package models

import "errors"

// Доменные ошибки. Хендлеры мапят их на HTTP-статусы.
var (
	ErrNotFound      = errors.New("not found")
	ErrEmailRequired = errors.New("users must have an email address")
	ErrEmailTaken    = errors.New("email is already taken")
)

// ValidationError — пользовательский ввод нарушил правило домена.
// Сообщение предназначено для показа в форме.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
