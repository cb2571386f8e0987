package repository

import (
	"errors"
	"strings"

	repo "marketplace/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// unique_violation
const pgUniqueViolation = "23505"

// gorm/pgのエラーをrepositoryのエラーに寄せる
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &repo.DuplicateError{Field: fieldFromConstraint(pgErr.ConstraintName)}
	}
	return err
}

// uq_<table>_<field> から field を取り出す
func fieldFromConstraint(name string) string {
	rest, ok := strings.CutPrefix(name, "uq_")
	if !ok {
		return name
	}
	if _, field, ok := strings.Cut(rest, "_"); ok {
		return field
	}
	return rest
}

// RowsAffected が 0 なら ErrNotFound
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
