package handler

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通の形 {success, message?, error?, <resource>...}
type envelope map[string]interface{}

func respond(c echo.Context, status int, message string, fields envelope) error {
	body := envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(status, body)
}

// 一覧 + count/total/page/pages
func respondPage[T any](c echo.Context, key string, p usecase.Page[T]) error {
	return respond(c, http.StatusOK, "", envelope{
		"count": len(p.Items),
		"total": p.Total,
		"page":  p.Page,
		"pages": p.Pages(),
		key:     p.Items,
	})
}

func respondList[T any](c echo.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return respond(c, http.StatusOK, "", envelope{"count": len(items), key: items})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{"success": false, "message": message})
}

func statusOf(kind error) int {
	switch {
	case errors.Is(kind, usecase.ErrValidation),
		errors.Is(kind, usecase.ErrConflict),
		errors.Is(kind, usecase.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(kind, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, usecase.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ue, ok := usecase.AsError(err); ok {
		status := statusOf(ue.Kind)
		if status != http.StatusInternalServerError {
			return fail(c, status, ue.Message)
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return fail(c, he.Code, http.StatusText(he.Code))
	}

	//500 は原因をログに残し、本文には出さない
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, envelope{
		"success": false,
		"message": "Server Error",
		"error":   "internal error",
	})
}

// Bind + Validate
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return &usecase.Error{Kind: usecase.ErrValidation, Message: "invalid request body"}
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// page / limit（未指定は0 = デフォルト）
func pageInput(c echo.Context) (usecase.PageInput, error) {
	var in usecase.PageInput
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return in, &usecase.Error{Kind: usecase.ErrValidation, Message: "invalid page"}
		}
		if p < 1 {
			return in, &usecase.Error{Kind: usecase.ErrValidation, Message: "invalid page"}
		}
		in.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return in, &usecase.Error{Kind: usecase.ErrValidation, Message: "invalid limit"}
		}
		in.Limit = l
	}
	return in, nil
}

// echo の HTTPErrorHandler。ルーティング由来のエラーも同じ形で返す
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if werr := writeError(c, err); werr != nil {
		c.Logger().Error(werr)
	}
}
