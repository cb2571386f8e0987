package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/gosimple/slug"
)

type SellerUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

// DI
func NewSellerUsecase(store repo.Store, idGen IDGenerator, clock Clock) *SellerUsecase {
	return &SellerUsecase{store: store, idGen: idGen, clock: clock}
}

// 出品者 + ユーザー情報
type SellerView struct {
	model.Seller
	User *UserRef `json:"user,omitempty"`
}

type CreateSellerInput struct {
	UserID           string
	StoreName        string
	StoreDescription string
	Address          string
	ContactNumber    string
	ProfilePhoto     *model.Attachment
	CoverPhoto       *model.Attachment
}

// nil は変更なし
type UpdateSellerInput struct {
	StoreName        *string
	StoreDescription *string
	Address          *string
	ContactNumber    *string
	ProfilePhoto     *model.Attachment
	CoverPhoto       *model.Attachment
}

func (u *SellerUsecase) List(ctx context.Context) ([]SellerView, error) {
	sellers, err := u.store.Sellers().List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return u.attach(ctx, sellers)
}

func (u *SellerUsecase) Get(ctx context.Context, id string) (SellerView, error) {
	s, err := u.store.Sellers().FindByID(ctx, id)
	if err != nil {
		return SellerView{}, fromRepo(err, "Seller not found")
	}
	return u.attachOne(ctx, s)
}

func (u *SellerUsecase) GetByUserID(ctx context.Context, userID string) (SellerView, error) {
	s, err := u.store.Sellers().FindByUserID(ctx, userID)
	if err != nil {
		return SellerView{}, fromRepo(err, "Seller not found")
	}
	return u.attachOne(ctx, s)
}

// 店名はslugにして探す（"My Shop" と "my-shop" は同じ店）
func (u *SellerUsecase) GetByStoreName(ctx context.Context, storeName string) (SellerView, error) {
	key := slug.Make(storeName)
	if key == "" {
		return SellerView{}, notFoundError("Seller not found")
	}
	s, err := u.store.Sellers().FindBySlug(ctx, key)
	if err != nil {
		return SellerView{}, fromRepo(err, "Seller not found")
	}
	return u.attachOne(ctx, s)
}

func (u *SellerUsecase) Create(ctx context.Context, in CreateSellerInput) (SellerView, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.StoreName = strings.TrimSpace(in.StoreName)
	in.StoreDescription = strings.TrimSpace(in.StoreDescription)
	in.Address = strings.TrimSpace(in.Address)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)

	if in.UserID == "" || in.StoreName == "" || in.StoreDescription == "" || in.Address == "" || in.ContactNumber == "" {
		return SellerView{}, validationError("user_id, store_name, store_description, address and contact_number are required")
	}

	var created model.Seller
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, in.UserID); err != nil {
			return fromRepo(err, "User not found")
		}

		//1ユーザー1出品者
		if _, err := r.Sellers().FindByUserID(ctx, in.UserID); err == nil {
			return conflictError("Seller profile already exists for this user")
		} else if !errors.Is(err, repo.ErrNotFound) {
			return internalError(err)
		}

		now := u.clock.Now()
		s, err := r.Sellers().Create(ctx, model.Seller{
			ID:               u.idGen.NewID(),
			UserID:           in.UserID,
			StoreName:        in.StoreName,
			StoreSlug:        slug.Make(in.StoreName),
			StoreDescription: in.StoreDescription,
			Address:          in.Address,
			ContactNumber:    in.ContactNumber,
			ProfilePhoto:     in.ProfilePhoto,
			CoverPhoto:       in.CoverPhoto,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return conflictError("Seller profile already exists for this user")
			}
			return internalError(err)
		}
		created = s
		return nil
	})
	if err != nil {
		return SellerView{}, err
	}
	return u.attachOne(ctx, created)
}

func (u *SellerUsecase) Update(ctx context.Context, id string, in UpdateSellerInput) (SellerView, error) {
	var updated model.Seller
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Sellers().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, "Seller not found")
		}

		fields := []struct {
			name string
			src  *string
			dst  *string
		}{
			{"store_name", in.StoreName, &s.StoreName},
			{"store_description", in.StoreDescription, &s.StoreDescription},
			{"address", in.Address, &s.Address},
			{"contact_number", in.ContactNumber, &s.ContactNumber},
		}
		for _, f := range fields {
			if f.src == nil {
				continue
			}
			v := strings.TrimSpace(*f.src)
			if v == "" {
				return validationError(f.name + " cannot be empty")
			}
			*f.dst = v
		}
		s.StoreSlug = slug.Make(s.StoreName)

		if in.ProfilePhoto != nil {
			s.ProfilePhoto = in.ProfilePhoto
		}
		if in.CoverPhoto != nil {
			s.CoverPhoto = in.CoverPhoto
		}
		s.UpdatedAt = u.clock.Now()

		if err := r.Sellers().Update(ctx, s); err != nil {
			return fromRepo(err, "Seller not found")
		}
		updated = s
		return nil
	})
	if err != nil {
		return SellerView{}, err
	}
	return u.attachOne(ctx, updated)
}

func (u *SellerUsecase) Delete(ctx context.Context, id string) error {
	if err := u.store.Sellers().Delete(ctx, id); err != nil {
		return fromRepo(err, "Seller not found")
	}
	return nil
}

// 出品者の商品一覧（新しい順）
func (u *SellerUsecase) ListProducts(ctx context.Context, sellerID string, in PageInput) (Page[model.Product], error) {
	pg, err := in.normalize()
	if err != nil {
		return Page[model.Product]{}, err
	}
	if _, err := u.store.Sellers().FindByID(ctx, sellerID); err != nil {
		return Page[model.Product]{}, fromRepo(err, "Seller not found")
	}

	products, total, err := u.store.Products().List(ctx, repo.ProductListQuery{SellerID: sellerID, Pagination: pg})
	if err != nil {
		return Page[model.Product]{}, internalError(err)
	}
	return newPage(products, total, pg), nil
}

func (u *SellerUsecase) attach(ctx context.Context, sellers []model.Seller) ([]SellerView, error) {
	ids := make([]string, 0, len(sellers))
	for _, s := range sellers {
		ids = append(ids, s.UserID)
	}
	users, err := populator{u.store}.users(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]SellerView, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, SellerView{Seller: s, User: users[s.UserID]})
	}
	return out, nil
}

func (u *SellerUsecase) attachOne(ctx context.Context, s model.Seller) (SellerView, error) {
	views, err := u.attach(ctx, []model.Seller{s})
	if err != nil {
		return SellerView{}, err
	}
	return views[0], nil
}
