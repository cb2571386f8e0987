package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/sellers のHTTP
type SellerHandler struct {
	uc *usecase.SellerUsecase
}

// DI
func NewSellerHandler(uc *usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

type createSellerRequest struct {
	UserID           string            `json:"user_id" validate:"required"`
	StoreName        string            `json:"store_name" validate:"required"`
	StoreDescription string            `json:"store_description" validate:"required"`
	Address          string            `json:"address" validate:"required"`
	ContactNumber    string            `json:"contact_number" validate:"required"`
	ProfilePhoto     *model.Attachment `json:"profile_photo"`
	CoverPhoto       *model.Attachment `json:"cover_photo"`
}

type updateSellerRequest struct {
	StoreName        *string           `json:"store_name"`
	StoreDescription *string           `json:"store_description"`
	Address          *string           `json:"address"`
	ContactNumber    *string           `json:"contact_number"`
	ProfilePhoto     *model.Attachment `json:"profile_photo"`
	CoverPhoto       *model.Attachment `json:"cover_photo"`
}

func (h *SellerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/user/:user_id", h.byUser)
	g.GET("/store/:storeName", h.byStoreName)
	g.GET("/:id", h.detail)
	g.GET("/:id/products", h.products)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *SellerHandler) list(c echo.Context) error {
	sellers, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, "sellers", sellers)
}

func (h *SellerHandler) detail(c echo.Context) error {
	s, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"seller": s})
}

func (h *SellerHandler) byUser(c echo.Context) error {
	s, err := h.uc.GetByUserID(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"seller": s})
}

func (h *SellerHandler) byStoreName(c echo.Context) error {
	s, err := h.uc.GetByStoreName(c.Request().Context(), c.Param("storeName"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"seller": s})
}

func (h *SellerHandler) products(c echo.Context) error {
	pg, err := pageInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListProducts(c.Request().Context(), c.Param("id"), pg)
	if err != nil {
		return writeError(c, err)
	}
	return respondPage(c, "products", out)
}

func (h *SellerHandler) create(c echo.Context) error {
	var req createSellerRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	s, err := h.uc.Create(c.Request().Context(), usecase.CreateSellerInput{
		UserID:           req.UserID,
		StoreName:        req.StoreName,
		StoreDescription: req.StoreDescription,
		Address:          req.Address,
		ContactNumber:    req.ContactNumber,
		ProfilePhoto:     req.ProfilePhoto,
		CoverPhoto:       req.CoverPhoto,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "Seller created successfully", envelope{"seller": s})
}

func (h *SellerHandler) update(c echo.Context) error {
	var req updateSellerRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	s, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateSellerInput{
		StoreName:        req.StoreName,
		StoreDescription: req.StoreDescription,
		Address:          req.Address,
		ContactNumber:    req.ContactNumber,
		ProfilePhoto:     req.ProfilePhoto,
		CoverPhoto:       req.CoverPhoto,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Seller updated successfully", envelope{"seller": s})
}

func (h *SellerHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Seller deleted successfully", nil)
}
