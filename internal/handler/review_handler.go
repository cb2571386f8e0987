package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/reviews のHTTP
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type createReviewRequest struct {
	UserID    string             `json:"user_id" validate:"required"`
	ProductID string             `json:"product_id" validate:"required"`
	Rating    int                `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string             `json:"comment" validate:"required"`
	Images    []model.Attachment `json:"images"`
}

type updateReviewRequest struct {
	Rating  *int               `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string            `json:"comment"`
	Images  []model.Attachment `json:"images"`
}

func (h *ReviewHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *ReviewHandler) list(c echo.Context) error {
	pg, err := pageInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListReviewsInput{
		ProductID: c.QueryParam("product_id"),
		UserID:    c.QueryParam("user_id"),
		PageInput: pg,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondPage(c, "reviews", out)
}

func (h *ReviewHandler) detail(c echo.Context) error {
	rv, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"review": rv})
}

func (h *ReviewHandler) create(c echo.Context) error {
	var req createReviewRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	rv, err := h.uc.Create(c.Request().Context(), usecase.CreateReviewInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "Review created successfully", envelope{"review": rv})
}

func (h *ReviewHandler) update(c echo.Context) error {
	var req updateReviewRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	rv, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Review updated successfully", envelope{"review": rv})
}

func (h *ReviewHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Review deleted successfully", nil)
}
