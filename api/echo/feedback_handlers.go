package echo

import (
	"net/http"
	"strconv"

	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/middleware"
	"github.com/labstack/echo/v4"
)

type submitFeedbackRequest struct {
	NewsID  string `json:"newsId"`
	Message string `json:"message"`
}

type respondFeedbackRequest struct {
	Response string `json:"response"`
}

func (a *PortalAPI) SubmitFeedbackHandler(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil || req.NewsID == "" {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("newsId and message are required"))
	}
	f, err := a.feedback.Submit(c.Request().Context(), middleware.UserFrom(c), req.NewsID, req.Message)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (a *PortalAPI) ListFeedbackHandler(c echo.Context) error {
	items, err := a.feedback.ListForNews(c.Request().Context(), c.Param("newsId"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (a *PortalAPI) ListPendingFeedbackHandler(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	items, err := a.feedback.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (a *PortalAPI) RespondFeedbackHandler(c echo.Context) error {
	var req respondFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("malformed body"))
	}
	f, err := a.feedback.Respond(c.Request().Context(), middleware.UserFrom(c), c.Param("id"), req.Response)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}
