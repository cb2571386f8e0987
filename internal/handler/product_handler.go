package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /api/products のHTTP
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type createProductRequest struct {
	Name          string             `json:"name" validate:"required"`
	Description   string             `json:"description" validate:"required"`
	Price         *decimal.Decimal   `json:"price" validate:"required"`
	StockQuantity *int64             `json:"stock_quantity" validate:"omitempty,gte=0"`
	Status        string             `json:"status" validate:"omitempty,oneof=active inactive draft"`
	SellerID      string             `json:"seller_id" validate:"required"`
	CategoryID    idList             `json:"category_id" validate:"required,min=1"`
	ProductImages []model.Attachment `json:"product_images"`
}

type updateProductRequest struct {
	Name          *string            `json:"name"`
	Description   *string            `json:"description"`
	Price         *decimal.Decimal   `json:"price"`
	StockQuantity *int64             `json:"stock_quantity" validate:"omitempty,gte=0"`
	Status        *string            `json:"status" validate:"omitempty,oneof=active inactive draft"`
	CategoryID    idList             `json:"category_id"`
	ProductImages []model.Attachment `json:"product_images"`
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func decimalQuery(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, &usecase.Error{Kind: usecase.ErrValidation, Message: "invalid " + name}
	}
	return &d, nil
}

func (h *ProductHandler) list(c echo.Context) error {
	pg, err := pageInput(c)
	if err != nil {
		return writeError(c, err)
	}
	minPrice, err := decimalQuery(c, "min_price")
	if err != nil {
		return writeError(c, err)
	}
	maxPrice, err := decimalQuery(c, "max_price")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		CategoryID: c.QueryParam("category_id"),
		SellerID:   c.QueryParam("seller_id"),
		Status:     c.QueryParam("status"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Search:     c.QueryParam("search"),
		PageInput:  pg,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondPage(c, "products", out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"product": p})
}

func (h *ProductHandler) create(c echo.Context) error {
	var req createProductRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Status:        req.Status,
		SellerID:      req.SellerID,
		CategoryIDs:   req.CategoryID,
		ProductImages: req.ProductImages,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "Product created successfully", envelope{"product": p})
}

func (h *ProductHandler) update(c echo.Context) error {
	var req updateProductRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Status:        req.Status,
		CategoryIDs:   req.CategoryID,
		ProductImages: req.ProductImages,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Product updated successfully", envelope{"product": p})
}

func (h *ProductHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}
