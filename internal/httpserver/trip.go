package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/middleware/auth"
	"github.com/planventure/planventure-api/internal/service"
	"github.com/planventure/planventure-api/internal/util"
)

type TripHandler struct {
	Svc *service.TripService
}

func tripID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *TripHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_create")

	var in service.CreateTripInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	view, err := h.Svc.Create(ctx, auth.UserID(c), in)
	if err != nil {
		l.Warn("create trip failed", "error", err)
		return respondError(c, err)
	}

	l.Info("trip created", "trip_id", view.ID)
	return c.JSON(http.StatusCreated, view)
}

func (h *TripHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	views, err := h.Svc.List(ctx, auth.UserID(c))
	if err != nil {
		logging.FromContext(ctx).Error("list trips failed", "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"trips": views})
}

func (h *TripHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := tripID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid trip id"})
	}

	view, err := h.Svc.Get(ctx, auth.UserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *TripHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_update")

	id, ok := tripID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid trip id"})
	}

	var in service.UpdateTripInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid body"})
	}

	view, err := h.Svc.Update(ctx, auth.UserID(c), id, in)
	if err != nil {
		l.Warn("update trip failed", "trip_id", id, "error", err)
		return respondError(c, err)
	}

	l.Info("trip updated", "trip_id", id)
	return c.JSON(http.StatusOK, view)
}

func (h *TripHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "trip_delete")

	id, ok := tripID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: "invalid trip id"})
	}

	if err := h.Svc.Delete(ctx, auth.UserID(c), id); err != nil {
		l.Warn("delete trip failed", "trip_id", id, "error", err)
		return respondError(c, err)
	}

	l.Info("trip deleted", "trip_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "Trip deleted successfully"})
}

func (h *TripHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")
	page := util.AtoiDefault(c.QueryParam("page"), 1)
	size := util.AtoiDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, docs, err := h.Svc.Search(ctx, auth.UserID(c), query, from, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("trip search failed", "query", query, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total":   total,
		"page":    page,
		"size":    limit,
		"results": docs,
	})
}
