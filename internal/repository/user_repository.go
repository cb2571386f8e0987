package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// ユーザーの永続化。住所・ウィッシュリスト・フォローは埋め込みなので Update で保存する
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	//行ロック付き。Tx内で使う
	FindByIDForUpdate(ctx context.Context, id string) (model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id string) error
}
