package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/middleware/auth"
	"github.com/planventure/planventure-api/internal/service"
)

type FormHandler struct {
	Svc *service.FormService
}

func (h *FormHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "form_submit")

	formType := c.Param("type")

	var data map[string]any
	if err := c.Bind(&data); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	form, err := h.Svc.Submit(ctx, auth.UserID(c), formType, data)
	if err != nil {
		l.Warn("form submit failed", "form_type", formType, "error", err)
		return respondError(c, err)
	}

	l.Info("form submitted", "form_id", form.ID, "form_type", formType)
	return c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	forms, err := h.Svc.List(ctx, auth.UserID(c))
	if err != nil {
		logging.FromContext(ctx).Error("list forms failed", "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"forms": forms})
}

func (h *FormHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid form id"})
	}

	form, err := h.Svc.Get(ctx, auth.UserID(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, form)
}
