package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind - категория ошибки, определяющая реакцию вызывающей стороны.
type ErrorKind string

const (
	ValidationKind   ErrorKind = "validation"   // Некорректные входные данные
	NotFoundKind     ErrorKind = "not_found"    // Сущность не найдена
	ConflictKind     ErrorKind = "conflict"     // Нарушено предусловие машины состояний
	StorageKind      ErrorKind = "storage"      // Временный сбой хранилища, запрос можно повторить
	UnauthorizedKind ErrorKind = "unauthorized" // Нет подтверждённого пользователя
	ForbiddenKind    ErrorKind = "forbidden"    // Роль не позволяет выполнить операцию
)

// ErrorResponse описывает ошибку с категорией и сообщением для пользователя.
type ErrorResponse struct {
	Kind    ErrorKind `json:"-"`
	Message string    `json:"reason"`
	Err     error     `json:"-"`
}

// NewErrorResponse создает новую ошибку с категорией и сообщением.
func NewErrorResponse(kind ErrorKind, message string) *ErrorResponse {
	return &ErrorResponse{
		Kind:    kind,
		Message: message}
}

// NewErrorResponseWithCause создает ошибку, сохраняя причину для логов.
func NewErrorResponseWithCause(kind ErrorKind, message string, cause error) *ErrorResponse {
	return &ErrorResponse{
		Kind:    kind,
		Message: message,
		Err:     cause}
}

// NewValidationError создает ошибку некорректных входных данных.
func NewValidationError(format string, args ...any) *ErrorResponse {
	return NewErrorResponse(ValidationKind, fmt.Sprintf(format, args...))
}

// NewNotFoundError создает ошибку отсутствующей сущности.
func NewNotFoundError(format string, args ...any) *ErrorResponse {
	return NewErrorResponse(NotFoundKind, fmt.Sprintf(format, args...))
}

// NewConflictError создает ошибку нарушенного предусловия статуса.
func NewConflictError(format string, args ...any) *ErrorResponse {
	return NewErrorResponse(ConflictKind, fmt.Sprintf(format, args...))
}

// NewStorageError скрывает детали хранилища от пользователя, сохраняя причину для логов.
func NewStorageError(cause error) *ErrorResponse {
	return &ErrorResponse{
		Kind:    StorageKind,
		Message: "storage temporarily unavailable, retry the request",
		Err:     cause,
	}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// Unwrap возвращает исходную причину ошибки.
func (e *ErrorResponse) Unwrap() error {
	return e.Err
}

// StatusCode возвращает HTTP-код для категории ошибки.
func (e *ErrorResponse) StatusCode() int {
	switch e.Kind {
	case ValidationKind, ConflictKind:
		return http.StatusBadRequest
	case NotFoundKind:
		return http.StatusNotFound
	case UnauthorizedKind:
		return http.StatusUnauthorized
	case ForbiddenKind:
		return http.StatusForbidden
	case StorageKind:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsKind проверяет, что в цепочке ошибок есть ErrorResponse указанной категории.
func IsKind(err error, kind ErrorKind) bool {
	var resp *ErrorResponse
	return errors.As(err, &resp) && resp.Kind == kind
}
