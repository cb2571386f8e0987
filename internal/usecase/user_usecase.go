package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

const minPasswordLen = 6

// UserUsecase は /users の業務ロジックです。
// 住所・ウィッシュリスト・フォローはユーザーに埋め込まれているので、ここでまとめて扱う。
type UserUsecase struct {
	store  repo.Store
	hasher PasswordHasher
	idGen  IDGenerator
	clock  Clock
}

// DI
func NewUserUsecase(store repo.Store, hasher PasswordHasher, idGen IDGenerator, clock Clock) *UserUsecase {
	return &UserUsecase{store: store, hasher: hasher, idGen: idGen, clock: clock}
}

type CreateUserInput struct {
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Password     string
	PhoneNumber  string
	ProfileImage string
}

// nil は変更なし
type UpdateUserInput struct {
	Username     *string
	FirstName    *string
	LastName     *string
	Email        *string
	PhoneNumber  *string
	ProfileImage *string
}

func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.store.Users().List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return users, nil
}

func (u *UserUsecase) Get(ctx context.Context, id string) (model.User, error) {
	usr, err := u.store.Users().FindByID(ctx, id)
	if err != nil {
		return model.User{}, fromRepo(err, "User not found")
	}
	return usr, nil
}

func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	//必須チェック
	if in.Username == "" || in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return model.User{}, validationError("username, first_name, last_name, email and password are required")
	}
	if !isValidEmail(in.Email) {
		return model.User{}, validationError("invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return model.User{}, validationError("password must be at least 6 characters")
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, internalError(err)
	}

	now := u.clock.Now()
	usr := model.User{
		ID:                 u.idGen.NewID(),
		Username:           in.Username,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		PasswordHash:       hashed,
		PhoneNumber:        in.PhoneNumber,
		ProfileImage:       in.ProfileImage,
		Addresses:          []model.Address{},
		WishlistIDs:        pq.StringArray{},
		FollowingSellerIDs: pq.StringArray{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := u.store.Users().Create(ctx, usr)
	if err != nil {
		return model.User{}, userWriteError(err)
	}
	return created, nil
}

func (u *UserUsecase) Update(ctx context.Context, id string, in UpdateUserInput) (model.User, error) {
	return u.modify(ctx, id, func(_ repo.TxRepos, usr *model.User) error {
		//空文字にはできない項目
		required := []struct {
			name string
			src  *string
			dst  *string
		}{
			{"username", in.Username, &usr.Username},
			{"first_name", in.FirstName, &usr.FirstName},
			{"last_name", in.LastName, &usr.LastName},
			{"email", in.Email, &usr.Email},
		}
		for _, f := range required {
			if f.src == nil {
				continue
			}
			v := strings.TrimSpace(*f.src)
			if v == "" {
				return validationError(f.name + " cannot be empty")
			}
			*f.dst = v
		}
		if in.Email != nil && !isValidEmail(usr.Email) {
			return validationError("invalid email")
		}

		if in.PhoneNumber != nil {
			usr.PhoneNumber = *in.PhoneNumber
		}
		if in.ProfileImage != nil {
			usr.ProfileImage = *in.ProfileImage
		}
		return nil
	})
}

func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	if err := u.store.Users().Delete(ctx, id); err != nil {
		return fromRepo(err, "User not found")
	}
	return nil
}

// ユーザーを行ロックして読み、fn で変更して保存する
func (u *UserUsecase) modify(ctx context.Context, id string, fn func(r repo.TxRepos, usr *model.User) error) (model.User, error) {
	var out model.User
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		usr, err := r.Users().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fromRepo(err, "User not found")
		}
		if err := fn(r, &usr); err != nil {
			return err
		}
		usr.UpdatedAt = u.clock.Now()
		if err := r.Users().Update(ctx, usr); err != nil {
			return userWriteError(err)
		}
		out = usr
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return out, nil
}

// 一意制約違反は「<field> already exists」
func userWriteError(err error) error {
	var dup *repo.DuplicateError
	if errors.As(err, &dup) {
		return conflictError(dup.Field + " already exists")
	}
	return fromRepo(err, "User not found")
}

var emailValidator = validator.New()

// メールチェック（リクエスト検証と同じ規則）
func isValidEmail(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}
