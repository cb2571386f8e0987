package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReturnHandler struct {
	uc *usecase.ReturnUsecase
}

func NewReturnHandler(uc *usecase.ReturnUsecase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

type createReturnRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
}

type updateReturnStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected processing completed"`
}

func (h *ReturnHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id/status", h.updateStatus)
	g.DELETE("/:id", h.delete)
}

func (h *ReturnHandler) list(c echo.Context) error {
	returns, err := h.uc.List(c.Request().Context(), usecase.ListReturnsInput{
		UserID:  c.QueryParam("user_id"),
		OrderID: c.QueryParam("order_id"),
		Status:  c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, "returns", returns)
}

func (h *ReturnHandler) detail(c echo.Context) error {
	ret, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"return": ret})
}

func (h *ReturnHandler) create(c echo.Context) error {
	var req createReturnRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	ret, err := h.uc.Create(c.Request().Context(), usecase.CreateReturnInput{
		OrderID: req.OrderID,
		UserID:  req.UserID,
		Reason:  req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "Return request created successfully", envelope{"return": ret})
}

func (h *ReturnHandler) updateStatus(c echo.Context) error {
	var req updateReturnStatusRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	ret, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Return status updated successfully", envelope{"return": ret})
}

func (h *ReturnHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Return request deleted successfully", nil)
}
