package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/carts のHTTP。カートはユーザーごとに1つ
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type addCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gte=1"`
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gte=1"`
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:user_id", h.getCart)
	g.POST("/:user_id", h.addToCart)
	g.PUT("/:user_id/:product_id", h.updateItem)
	g.DELETE("/:user_id/:product_id", h.removeItem)
	g.DELETE("/:user_id", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	cart, err := h.uc.GetCart(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"cart": cart})
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req addCartRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	cart, err := h.uc.AddToCart(c.Request().Context(), c.Param("user_id"), req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Item added to cart", envelope{"cart": cart})
}

func (h *CartHandler) updateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	cart, err := h.uc.UpdateCartItem(c.Request().Context(), c.Param("user_id"), c.Param("product_id"), req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Cart updated", envelope{"cart": cart})
}

func (h *CartHandler) removeItem(c echo.Context) error {
	cart, err := h.uc.RemoveFromCart(c.Request().Context(), c.Param("user_id"), c.Param("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Item removed from cart", envelope{"cart": cart})
}

func (h *CartHandler) clear(c echo.Context) error {
	cart, err := h.uc.ClearCart(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Cart cleared", envelope{"cart": cart})
}
