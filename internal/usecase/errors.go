package usecase

import (
	"errors"

	repo "marketplace/internal/repository"
)

var (
	//400 入力不足・不正
	ErrValidation = errors.New("validation error")
	//404
	ErrNotFound = errors.New("not found")
	//400 一意制約・重複
	ErrConflict = errors.New("conflict")
	//403 所有者違い
	ErrForbidden = errors.New("forbidden")
	//400 在庫不足
	ErrInsufficientStock = errors.New("insufficient stock")
	//500
	ErrInternal = errors.New("internal error")
)

// Error は usecase が返すエラー。Kind で種別を判定する
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func conflictError(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func forbiddenError(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func insufficientStockError(msg string) error {
	return &Error{Kind: ErrInsufficientStock, Message: msg}
}

func internalError(cause error) error {
	return &Error{Kind: ErrInternal, Message: "internal error", Cause: cause}
}

// repoのエラーを変換。ErrNotFound は notFoundMsg の404、それ以外は500
func fromRepo(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return notFoundError(notFoundMsg)
	}
	return internalError(err)
}
