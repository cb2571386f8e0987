package cache

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// echo.Logger を満たす最小限
type Logger interface {
	Warnf(format string, args ...interface{})
}

// CachedStore は Store をラップし、商品の FindByID をキャッシュから返す。
// Tx内で書き込んだ商品は commit 後にまとめて消す。Tx内の読み込みはキャッシュを使わない。
type CachedStore struct {
	repo.Store
	cache ProductCache
	log   Logger
}

func NewCachedStore(store repo.Store, cache ProductCache, log Logger) *CachedStore {
	return &CachedStore{Store: store, cache: cache, log: log}
}

func (s *CachedStore) Products() repo.ProductRepository {
	return &readThroughProducts{ProductRepository: s.Store.Products(), s: s}
}

func (s *CachedStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	touched := newIDSet()
	err := s.Store.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(&trackingRepos{TxRepos: r, touched: touched})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, touched.list()...)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		s.log.Warnf("product cache delete failed (ids=%v): %v", ids, err)
	}
}

type idSet struct {
	seen  map[string]struct{}
	order []string
}

func newIDSet() *idSet {
	return &idSet{seen: map[string]struct{}{}}
}

func (s *idSet) add(id string) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *idSet) list() []string {
	return s.order
}

// Tx外の商品repo
type readThroughProducts struct {
	repo.ProductRepository
	s *CachedStore
}

func (p *readThroughProducts) FindByID(ctx context.Context, id string) (model.Product, error) {
	cached, ok, err := p.s.cache.Get(ctx, id)
	if err != nil {
		p.s.log.Warnf("product cache get failed (continuing with store): %v", err)
	}
	if ok {
		return cached, nil
	}

	pr, err := p.ProductRepository.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	//他のコミットの削除より後にSetされると古い値が残る。残るのはTTLまで
	//在庫・集計の判定はTx内で読むのでキャッシュには依存しない
	if err := p.s.cache.Set(ctx, pr); err != nil {
		p.s.log.Warnf("product cache set failed: %v", err)
	}
	return pr, nil
}

func (p *readThroughProducts) Update(ctx context.Context, pr model.Product) error {
	if err := p.ProductRepository.Update(ctx, pr); err != nil {
		return err
	}
	p.s.invalidate(ctx, pr.ID)
	return nil
}

func (p *readThroughProducts) Delete(ctx context.Context, id string) error {
	if err := p.ProductRepository.Delete(ctx, id); err != nil {
		return err
	}
	p.s.invalidate(ctx, id)
	return nil
}

func (p *readThroughProducts) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	ok, err := p.ProductRepository.DecreaseStockIfEnough(ctx, id, qty)
	if err != nil || !ok {
		return ok, err
	}
	p.s.invalidate(ctx, id)
	return true, nil
}

func (p *readThroughProducts) SetReviewSummary(ctx context.Context, id string, sum model.ReviewSummary) error {
	if err := p.ProductRepository.SetReviewSummary(ctx, id, sum); err != nil {
		return err
	}
	p.s.invalidate(ctx, id)
	return nil
}

// Tx内のrepo。書いた商品IDを記録するだけ
type trackingRepos struct {
	repo.TxRepos
	touched *idSet
}

func (r *trackingRepos) Products() repo.ProductRepository {
	return &trackingProducts{ProductRepository: r.TxRepos.Products(), touched: r.touched}
}

type trackingProducts struct {
	repo.ProductRepository
	touched *idSet
}

func (p *trackingProducts) Update(ctx context.Context, pr model.Product) error {
	p.touched.add(pr.ID)
	return p.ProductRepository.Update(ctx, pr)
}

func (p *trackingProducts) Delete(ctx context.Context, id string) error {
	p.touched.add(id)
	return p.ProductRepository.Delete(ctx, id)
}

func (p *trackingProducts) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	p.touched.add(id)
	return p.ProductRepository.DecreaseStockIfEnough(ctx, id, qty)
}

func (p *trackingProducts) SetReviewSummary(ctx context.Context, id string, sum model.ReviewSummary) error {
	p.touched.add(id)
	return p.ProductRepository.SetReviewSummary(ctx, id, sum)
}
