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

type transitionRequest struct {
	Status     domain.HelpRequestStatus `json:"status"`
	AssigneeID string                   `json:"assigneeId"`
	Note       string                   `json:"note"`
}

func (a *PortalAPI) SubmitHelpRequestHandler(c echo.Context) error {
	var in services.HelpRequestInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("malformed body"))
	}
	r, err := a.requests.Submit(c.Request().Context(), middleware.UserFrom(c), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (a *PortalAPI) GetHelpRequestHandler(c echo.Context) error {
	r, err := a.requests.Get(c.Request().Context(), c.Param("id"), middleware.UserFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (a *PortalAPI) ListMyHelpRequestsHandler(c echo.Context) error {
	items, err := a.requests.ListMine(c.Request().Context(), middleware.UserFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (a *PortalAPI) ListDepartmentHelpRequestsHandler(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	dept := domain.Department(c.Param("dept"))
	status := domain.HelpRequestStatus(c.QueryParam("status"))

	items, err := a.requests.ListForDepartment(c.Request().Context(), dept, status, limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (a *PortalAPI) TransitionHelpRequestHandler(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("status is required"))
	}
	r, err := a.requests.Transition(c.Request().Context(), c.Param("id"), req.Status, req.AssigneeID, req.Note)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
