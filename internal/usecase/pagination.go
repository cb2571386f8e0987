package usecase

import repo "marketplace/internal/repository"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// 0 ならデフォルト（page=1, limit=20）
type PageInput struct {
	Page  int
	Limit int
}

func (in PageInput) normalize() (repo.Pagination, error) {
	p := repo.Pagination{Page: in.Page, Limit: in.Limit}
	if p.Page == 0 {
		p.Page = defaultPage
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Page < 1 {
		return repo.Pagination{}, validationError("invalid page")
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		return repo.Pagination{}, validationError("invalid limit")
	}
	return p, nil
}

// 一覧の1ページ分
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

func (p Page[T]) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

func newPage[T any](items []T, total int64, pg repo.Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: pg.Page, Limit: pg.Limit}
}
