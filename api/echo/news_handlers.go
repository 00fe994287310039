package echo

import (
	"net/http"
	"strconv"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/middleware"
	"github.com/EngKARANGWA/rugalika-backend/services"
	"github.com/labstack/echo/v4"
)

func (a *PortalAPI) ListNewsHandler(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	category := domain.NewsCategory(c.QueryParam("category"))

	items, err := a.news.List(c.Request().Context(), middleware.UserFrom(c), category, limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (a *PortalAPI) GetNewsHandler(c echo.Context) error {
	n, err := a.news.Get(c.Request().Context(), c.Param("id"), middleware.UserFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

func (a *PortalAPI) CreateNewsHandler(c echo.Context) error {
	var in services.NewsInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("malformed body"))
	}
	n, err := a.news.Create(c.Request().Context(), middleware.UserFrom(c), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (a *PortalAPI) UpdateNewsHandler(c echo.Context) error {
	var in services.NewsInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("malformed body"))
	}
	n, err := a.news.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

func (a *PortalAPI) DeleteNewsHandler(c echo.Context) error {
	if err := a.news.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
