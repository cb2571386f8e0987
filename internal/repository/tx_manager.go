package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	Sellers() SellerRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Returns() ReturnRepository
	Reviews() ReviewRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// Tx外のrepoとTxManagerの両方を持つストア
type Store interface {
	TxRepos
	TransactionManager
}
