package repository

import "math"

// ページング指定。Limit が 0 なら全件
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	//桁あふれする位置は最大値に丸める（空ページになる）
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}
