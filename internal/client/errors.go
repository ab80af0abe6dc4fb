package client

import (
	"errors"
	"fmt"
)

// Виды ошибок клиента
var (
	// ErrTransport: the request never completed or the server answered non-2xx.
	ErrTransport = errors.New("transport error")
	// ErrParse: the body could not be decoded into the operation's response schema.
	ErrParse = errors.New("parse error")
	// ErrRemote: the server answered with a non-empty GraphQL errors array.
	ErrRemote = errors.New("remote error")
)

// Error ошибка вызова операции API
type Error struct {
	Kind   error
	Op     string
	Status int
	// Code is the extensions.code of the first remote error, if any.
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
