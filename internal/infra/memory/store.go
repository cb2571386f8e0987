// Package memory はプロセス内メモリで動くストア。
// WithinTx はデータ全体を複製して実行し、成功したときだけ差し替える。
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	repo "marketplace/internal/repository"
)

type dataset struct {
	users      map[string]userRow
	sellers    map[string]sellerRow
	categories map[string]categoryRow
	products   map[string]productRow
	carts      map[string]cartRow
	orders     map[string]orderRow
	returns    map[string]returnRow
	reviews    map[string]reviewRow
}

func newDataset() *dataset {
	return &dataset{
		users:      map[string]userRow{},
		sellers:    map[string]sellerRow{},
		categories: map[string]categoryRow{},
		products:   map[string]productRow{},
		carts:      map[string]cartRow{},
		orders:     map[string]orderRow{},
		returns:    map[string]returnRow{},
		reviews:    map[string]reviewRow{},
	}
}

// 行は不変として扱うので、マップだけ複製すればよい
func (d *dataset) clone() *dataset {
	return &dataset{
		users:      cloneMap(d.users),
		sellers:    cloneMap(d.sellers),
		categories: cloneMap(d.categories),
		products:   cloneMap(d.products),
		carts:      cloneMap(d.carts),
		orders:     cloneMap(d.orders),
		returns:    cloneMap(d.returns),
		reviews:    cloneMap(d.reviews),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Store struct {
	mu   sync.RWMutex
	data *dataset
	*repos
}

func NewStore() *Store {
	s := &Store{data: newDataset()}
	s.repos = newRepos(&access{store: s})
	return s
}

// Tx中は他の書き込みを待たせる
func (s *Store) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(newRepos(&access{tx: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Tx外ならストアのロックを取り、Tx内なら複製を直接触る
type access struct {
	store *Store
	tx    *dataset
}

func (a *access) read(fn func(d *dataset) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.data)
}

func (a *access) write(fn func(d *dataset) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.data)
}

type repos struct {
	users      *userRepo
	sellers    *sellerRepo
	categories *categoryRepo
	products   *productRepo
	carts      *cartRepo
	orders     *orderRepo
	returns    *returnRepo
	reviews    *reviewRepo
}

func newRepos(a *access) *repos {
	return &repos{
		users:      &userRepo{a},
		sellers:    &sellerRepo{a},
		categories: &categoryRepo{a},
		products:   &productRepo{a},
		carts:      &cartRepo{a},
		orders:     &orderRepo{a},
		returns:    &returnRepo{a},
		reviews:    &reviewRepo{a},
	}
}

func (r *repos) Users() repo.UserRepository           { return r.users }
func (r *repos) Sellers() repo.SellerRepository       { return r.sellers }
func (r *repos) Categories() repo.CategoryRepository { return r.categories }
func (r *repos) Products() repo.ProductRepository     { return r.products }
func (r *repos) Carts() repo.CartRepository           { return r.carts }
func (r *repos) Orders() repo.OrderRepository         { return r.orders }
func (r *repos) Returns() repo.ReturnRepository       { return r.returns }
func (r *repos) Reviews() repo.ReviewRepository       { return r.reviews }

// 新しい順（同時刻はID降順）に並べる
func sortNewest[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := createdAt(items[i]), createdAt(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(items[i]) > id(items[j])
	})
}

func paginate[T any](items []T, p repo.Pagination) []T {
	if p.Limit <= 0 {
		return items
	}
	off := p.Offset()
	if off < 0 || off >= len(items) {
		return []T{}
	}
	end := off + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
