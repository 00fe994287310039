package echo

import (
	"net/http"

	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/middleware"
	"github.com/labstack/echo/v4"
)

func (a *PortalAPI) UploadHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("file field is required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("unreadable file"))
	}
	defer src.Close()

	u, err := a.uploads.Store(c.Request().Context(), middleware.UserFrom(c),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, src)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (a *PortalAPI) DownloadHandler(c echo.Context) error {
	u, rc, err := a.uploads.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiError(c, err)
	}
	defer rc.Close()

	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
