package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *PortalAPI) AnalyticsSummaryHandler(c echo.Context) error {
	summary, err := a.analytics.Summary(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
