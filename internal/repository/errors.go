package repository

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// 一意制約違反。Field は衝突した項目名
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return ErrDuplicate.Error()
	}
	return "duplicate " + e.Field
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
