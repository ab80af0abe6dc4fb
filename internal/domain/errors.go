package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок бизнес-логики
var (
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	ErrNotFound = errors.New("not found")
)

// Error ошибка бизнес-логики с видом и сообщением для клиента
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "domain error"
}

func (e *Error) Unwrap() error { return e.Kind }

// Code машиночитаемый код для ответов API
func (e *Error) Code() string {
	switch e.Kind {
	case ErrConflict:
		return "CONFLICT"
	case ErrInvalid:
		return "INVALID"
	case ErrNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}

// Extensions is picked up by the GraphQL executor.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code()}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalid, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}
