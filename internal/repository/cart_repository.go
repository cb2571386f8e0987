package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	//行ロック付き。Tx内で使う
	FindByUserIDForUpdate(ctx context.Context, userID string) (model.Cart, error)
	//無ければ c で作成し、行ロックを取って返す。Tx内で使う
	GetOrCreateForUpdate(ctx context.Context, c model.Cart) (model.Cart, error)
	//明細をまるごと保存
	SaveItems(ctx context.Context, c model.Cart) error
}
