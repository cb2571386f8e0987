package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type AddressInput struct {
	AddressType string
	Street      string
	City        string
	Province    string
	PostalCode  string
	IsDefault   bool
}

// nil は変更なし
type AddressPatch struct {
	AddressType *string
	Street      *string
	City        *string
	Province    *string
	PostalCode  *string
	IsDefault   *bool
}

// 住所を追加。is_default なら他のデフォルトを外す
func (u *UserUsecase) AddAddress(ctx context.Context, userID string, in AddressInput) (model.User, error) {
	addr := model.Address{
		AddressType: strings.TrimSpace(in.AddressType),
		Street:      strings.TrimSpace(in.Street),
		City:        strings.TrimSpace(in.City),
		Province:    strings.TrimSpace(in.Province),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		IsDefault:   in.IsDefault,
	}
	if addr.AddressType == "" || addr.Street == "" || addr.City == "" || addr.Province == "" || addr.PostalCode == "" {
		return model.User{}, validationError("All address fields are required")
	}

	return u.modify(ctx, userID, func(_ repo.TxRepos, usr *model.User) error {
		if addr.IsDefault {
			clearDefaults(usr.Addresses)
		}
		usr.Addresses = append(usr.Addresses, addr)
		return nil
	})
}

// 添字で住所を部分更新
func (u *UserUsecase) UpdateAddress(ctx context.Context, userID string, index int, in AddressPatch) (model.User, error) {
	return u.modify(ctx, userID, func(_ repo.TxRepos, usr *model.User) error {
		if index < 0 || index >= len(usr.Addresses) {
			return notFoundError("Address not found")
		}
		a := &usr.Addresses[index]

		//空文字は変更なし扱い
		set := func(dst *string, src *string) {
			if src != nil {
				if v := strings.TrimSpace(*src); v != "" {
					*dst = v
				}
			}
		}
		set(&a.AddressType, in.AddressType)
		set(&a.Street, in.Street)
		set(&a.City, in.City)
		set(&a.Province, in.Province)
		set(&a.PostalCode, in.PostalCode)

		if in.IsDefault != nil {
			if *in.IsDefault {
				clearDefaults(usr.Addresses)
				usr.Addresses[index].IsDefault = true
			} else {
				a.IsDefault = false
			}
		}
		return nil
	})
}

func (u *UserUsecase) DeleteAddress(ctx context.Context, userID string, index int) (model.User, error) {
	return u.modify(ctx, userID, func(_ repo.TxRepos, usr *model.User) error {
		if index < 0 || index >= len(usr.Addresses) {
			return notFoundError("Address not found")
		}
		usr.Addresses = append(usr.Addresses[:index], usr.Addresses[index+1:]...)
		return nil
	})
}

func clearDefaults(addrs []model.Address) {
	for i := range addrs {
		addrs[i].IsDefault = false
	}
}
