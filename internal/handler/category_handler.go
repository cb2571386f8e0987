package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *CategoryHandler) list(c echo.Context) error {
	cats, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, "categories", cats)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	cat, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"category": cat})
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req createCategoryRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	cat, err := h.uc.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "Category created successfully", envelope{"category": cat})
}

func (h *CategoryHandler) update(c echo.Context) error {
	var req updateCategoryRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	cat, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Category updated successfully", envelope{"category": cat})
}

func (h *CategoryHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}
