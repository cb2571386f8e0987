package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/users のHTTP（住所・ウィッシュリスト・フォローを含む）
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type createUserRequest struct {
	Username     string `json:"username" validate:"required"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	PhoneNumber  string `json:"phone_number"`
	ProfileImage string `json:"profile_image"`
}

type updateUserRequest struct {
	Username     *string `json:"username"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	PhoneNumber  *string `json:"phone_number"`
	ProfileImage *string `json:"profile_image"`
}

type addressRequest struct {
	AddressType string `json:"address_type" validate:"required"`
	Street      string `json:"street" validate:"required"`
	City        string `json:"city" validate:"required"`
	Province    string `json:"province" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required"`
	IsDefault   bool   `json:"is_default"`
}

type addressPatchRequest struct {
	AddressType *string `json:"address_type"`
	Street      *string `json:"street"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	PostalCode  *string `json:"postal_code"`
	IsDefault   *bool   `json:"is_default"`
}

type wishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type followRequest struct {
	SellerID string `json:"seller_id" validate:"required"`
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)

	g.POST("/:id/addresses", h.addAddress)
	g.PUT("/:id/addresses/:addressIndex", h.updateAddress)
	g.DELETE("/:id/addresses/:addressIndex", h.deleteAddress)

	g.POST("/:id/wishlist", h.addWishlist)
	g.DELETE("/:id/wishlist/:product_id", h.removeWishlist)

	g.POST("/:id/follow", h.follow)
	g.DELETE("/:id/follow/:seller_id", h.unfollow)
}

func (h *UserHandler) list(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, "users", users)
}

func (h *UserHandler) detail(c echo.Context) error {
	u, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"user": u})
}

func (h *UserHandler) create(c echo.Context) error {
	var req createUserRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.Create(c.Request().Context(), usecase.CreateUserInput{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		PhoneNumber:  req.PhoneNumber,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "User created successfully", envelope{"user": u})
}

func (h *UserHandler) update(c echo.Context) error {
	var req updateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateUserInput{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "User updated successfully", envelope{"user": u})
}

func (h *UserHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) addAddress(c echo.Context) error {
	var req addressRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.AddAddress(c.Request().Context(), c.Param("id"), usecase.AddressInput{
		AddressType: req.AddressType,
		Street:      req.Street,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Address added successfully", envelope{"user": u})
}

func addressIndex(c echo.Context) (int, error) {
	idx, err := strconv.Atoi(c.Param("addressIndex"))
	if err != nil || idx < 0 {
		return 0, &usecase.Error{Kind: usecase.ErrValidation, Message: "invalid address index"}
	}
	return idx, nil
}

func (h *UserHandler) updateAddress(c echo.Context) error {
	idx, err := addressIndex(c)
	if err != nil {
		return writeError(c, err)
	}

	var req addressPatchRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.UpdateAddress(c.Request().Context(), c.Param("id"), idx, usecase.AddressPatch{
		AddressType: req.AddressType,
		Street:      req.Street,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Address updated successfully", envelope{"user": u})
}

func (h *UserHandler) deleteAddress(c echo.Context) error {
	idx, err := addressIndex(c)
	if err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.DeleteAddress(c.Request().Context(), c.Param("id"), idx)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Address deleted successfully", envelope{"user": u})
}

func (h *UserHandler) addWishlist(c echo.Context) error {
	var req wishlistRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.AddToWishlist(c.Request().Context(), c.Param("id"), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Product added to wishlist", envelope{"user": u})
}

func (h *UserHandler) removeWishlist(c echo.Context) error {
	u, err := h.uc.RemoveFromWishlist(c.Request().Context(), c.Param("id"), c.Param("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Product removed from wishlist", envelope{"user": u})
}

func (h *UserHandler) follow(c echo.Context) error {
	var req followRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	u, err := h.uc.FollowSeller(c.Request().Context(), c.Param("id"), req.SellerID)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Seller followed successfully", envelope{"user": u})
}

func (h *UserHandler) unfollow(c echo.Context) error {
	u, err := h.uc.UnfollowSeller(c.Request().Context(), c.Param("id"), c.Param("seller_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Seller unfollowed successfully", envelope{"user": u})
}
