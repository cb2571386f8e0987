package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ReturnUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

func NewReturnUsecase(store repo.Store, idGen IDGenerator, clock Clock) *ReturnUsecase {
	return &ReturnUsecase{store: store, idGen: idGen, clock: clock}
}

type ReturnView struct {
	model.Return
	User  *UserRef  `json:"user,omitempty"`
	Order *OrderRef `json:"order,omitempty"`
}

type ListReturnsInput struct {
	UserID  string
	OrderID string
	Status  string
}

type CreateReturnInput struct {
	OrderID string
	UserID  string
	Reason  string
}

func (u *ReturnUsecase) List(ctx context.Context, in ListReturnsInput) ([]ReturnView, error) {
	status := model.ReturnStatus(in.Status)
	if status != "" && !status.Valid() {
		return nil, validationError("invalid status")
	}
	returns, err := u.store.Returns().List(ctx, repo.ReturnFilter{UserID: in.UserID, OrderID: in.OrderID, Status: status})
	if err != nil {
		return nil, internalError(err)
	}
	return u.attach(ctx, u.store, returns)
}

func (u *ReturnUsecase) Get(ctx context.Context, id string) (ReturnView, error) {
	ret, err := u.store.Returns().FindByID(ctx, id)
	if err != nil {
		return ReturnView{}, fromRepo(err, "Return request not found")
	}
	return u.attachOne(ctx, u.store, ret)
}

// 返品申請。注文の持ち主以外は403、(order, user) で1件まで
func (u *ReturnUsecase) Create(ctx context.Context, in CreateReturnInput) (ReturnView, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.Reason = strings.TrimSpace(in.Reason)
	if in.OrderID == "" || in.UserID == "" || in.Reason == "" {
		return ReturnView{}, validationError("order_id, user_id and reason are required")
	}

	var out ReturnView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if err != nil {
			return fromRepo(err, "Order not found")
		}
		if _, err := r.Users().FindByID(ctx, in.UserID); err != nil {
			return fromRepo(err, "User not found")
		}
		if o.UserID != in.UserID {
			return forbiddenError("This order does not belong to the user")
		}

		now := u.clock.Now()
		ret, err := r.Returns().Create(ctx, model.Return{
			ID:        u.idGen.NewID(),
			OrderID:   in.OrderID,
			UserID:    in.UserID,
			Reason:    in.Reason,
			Status:    model.ReturnStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return conflictError("Return request already exists for this order")
			}
			return internalError(err)
		}
		out, err = u.attachOne(ctx, r, ret)
		return err
	})
	if err != nil {
		return ReturnView{}, err
	}
	return out, nil
}

func (u *ReturnUsecase) UpdateStatus(ctx context.Context, id string, status string) (ReturnView, error) {
	st := model.ReturnStatus(strings.TrimSpace(status))
	if st == "" {
		return ReturnView{}, validationError("Status is required")
	}
	if !st.Valid() {
		return ReturnView{}, validationError("invalid status")
	}

	var out ReturnView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Returns().UpdateStatus(ctx, id, st); err != nil {
			return fromRepo(err, "Return request not found")
		}
		ret, err := r.Returns().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, "Return request not found")
		}
		out, err = u.attachOne(ctx, r, ret)
		return err
	})
	if err != nil {
		return ReturnView{}, err
	}
	return out, nil
}

func (u *ReturnUsecase) Delete(ctx context.Context, id string) error {
	if err := u.store.Returns().Delete(ctx, id); err != nil {
		return fromRepo(err, "Return request not found")
	}
	return nil
}

func (u *ReturnUsecase) attach(ctx context.Context, r repo.TxRepos, returns []model.Return) ([]ReturnView, error) {
	userIDs := make([]string, 0, len(returns))
	orderIDs := make([]string, 0, len(returns))
	for _, ret := range returns {
		userIDs = append(userIDs, ret.UserID)
		orderIDs = append(orderIDs, ret.OrderID)
	}

	pop := populator{r}
	users, err := pop.users(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	orders, err := pop.orders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ReturnView, 0, len(returns))
	for _, ret := range returns {
		out = append(out, ReturnView{Return: ret, User: users[ret.UserID], Order: orders[ret.OrderID]})
	}
	return out, nil
}

func (u *ReturnUsecase) attachOne(ctx context.Context, r repo.TxRepos, ret model.Return) (ReturnView, error) {
	views, err := u.attach(ctx, r, []model.Return{ret})
	if err != nil {
		return ReturnView{}, err
	}
	return views[0], nil
}
