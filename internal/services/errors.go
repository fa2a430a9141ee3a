package services

import "errors"

// ErrorType 错误类型，决定 HTTP 状态码
type ErrorType string

const (
	TypeConflict    ErrorType = "conflict"
	TypeNotFound    ErrorType = "not_found"
	TypeWrongSchema ErrorType = "wrong_schema"
)

// AppError is a domain error value carried to the HTTP boundary.
type AppError struct {
	Type    ErrorType `json:"error"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func ConflictError(message string) *AppError {
	return &AppError{Type: TypeConflict, Message: message}
}

func NotFoundError(message string) *AppError {
	if message == "" {
		message = "Recommendation not found"
	}
	return &AppError{Type: TypeNotFound, Message: message}
}

func ValidationError(message string) *AppError {
	return &AppError{Type: TypeWrongSchema, Message: message}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == TypeNotFound
}

func IsConflict(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == TypeConflict
}

func IsValidation(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == TypeWrongSchema
}
