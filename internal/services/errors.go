package services

import (
	"errors"
	"fmt"
)

var (
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStorageFailure = errors.New("storage failure")
)

// Error ошибка, понятная клиенту; Kind один из Err* выше
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func notFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func invalid(message string) error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

// StorageError сбой хранилища (БД или файлов); клиенту не раскрывается
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}

func storageFailure(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
