package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")
	ErrTokenRevoked         = fmt.Errorf("токен отозван")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("токен авторизации отсутствует")
	ErrInvalidCredentials = fmt.Errorf("неверный email или пароль")
	ErrRoleMismatch       = fmt.Errorf("роль не совпадает")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound          = fmt.Errorf("запись не найдена")
	ErrBadRequest        = fmt.Errorf("неверный запрос")
	ErrInvalidArgument   = fmt.Errorf("недопустимое значение аргумента")
	ErrNoFieldsToUpdate  = fmt.Errorf("нет полей для обновления")
	ErrInvalidTransition = fmt.Errorf("недопустимый переход статуса")
	ErrConflict          = fmt.Errorf("запись с такими данными уже существует")
)

// HttpError - ошибка с явным HTTP-кодом и сообщением для клиента.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrBadRequest}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewConflictError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrConflict}
}

func NewUnauthorizedError(message string, err error) *HttpError {
	return &HttpError{Code: http.StatusUnauthorized, Message: message, Err: err}
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrInvalidArgument }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode сопоставляет сигнальные ошибки с HTTP-кодами.
// Для неизвестных ошибок возвращает 500.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrRoleMismatch),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrTokenIsNotAccess),
		errors.Is(err, ErrTokenIsNotRefresh),
		errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrUserIDNotFoundInContext):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrNoFieldsToUpdate),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var publicMessages = []struct {
	err     error
	message string
}{
	{ErrInvalidCredentials, "Incorrect email or password"},
	{ErrRoleMismatch, "Role mismatch"},
	{ErrTokenExpired, "Token has expired"},
	{ErrTokenRevoked, "Token has been revoked"},
	{ErrInvalidToken, "Could not validate credentials"},
	{ErrTokenIsNotAccess, "Could not validate credentials"},
	{ErrTokenIsNotRefresh, "Could not validate credentials"},
	{ErrInvalidSigningMethod, "Could not validate credentials"},
	{ErrEmptyAuthHeader, "Not authenticated"},
	{ErrUnauthorized, "Not authenticated"},
	{ErrUserIDNotFoundInContext, "Not authenticated"},
	{ErrForbidden, "Not enough permissions"},
	{ErrNotFound, "Not found"},
	{ErrNoFieldsToUpdate, "No fields to update"},
	{ErrInvalidTransition, "Invalid status transition"},
	{ErrConflict, "Already exists"},
	{ErrInvalidArgument, "Invalid argument"},
	{ErrBadRequest, "Bad request"},
}

// PublicMessage возвращает сообщение, которое можно показать клиенту.
func PublicMessage(err error) string {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	var inputErr *InvalidInputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	for _, pm := range publicMessages {
		if errors.Is(err, pm.err) {
			return pm.message
		}
	}
	return "Internal server error"
}
