package echo

import (
	"net/http"

	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/middleware"
	"github.com/labstack/echo/v4"
)

type sendCodeRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	AccessToken string `json:"accessToken"`
}

// SendCodeHandler issues a one-time code and mails it. The response body
// never carries the code.
func (a *PortalAPI) SendCodeHandler(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("email is required"))
	}
	if err := a.auth.SendCode(c.Request().Context(), req.Email); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "code sent"})
}

// VerifyCodeHandler exchanges a valid code for an access/refresh token pair.
func (a *PortalAPI) VerifyCodeHandler(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("email and code are required"))
	}
	result, err := a.auth.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// RefreshHandler mints a new access token. The refresh token is not rotated.
func (a *PortalAPI) RefreshHandler(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("refreshToken is required"))
	}
	accessToken, err := a.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"accessToken": accessToken})
}

// LogoutHandler blacklists the presented token. Revoking twice succeeds
// twice.
func (a *PortalAPI) LogoutHandler(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil || req.AccessToken == "" {
		return c.JSON(http.StatusBadRequest, serrors.NewInvalidRequest("accessToken is required"))
	}
	if err := a.auth.Logout(c.Request().Context(), req.AccessToken); err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// MeHandler returns the authenticated user's profile.
func (a *PortalAPI) MeHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.UserFrom(c))
}

// PurgeExpiredHandler runs the explicit maintenance sweep over both auth
// stores.
func (a *PortalAPI) PurgeExpiredHandler(c echo.Context) error {
	codes, tokens, err := a.auth.PurgeExpired(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"purgedCodes":  codes,
		"purgedTokens": tokens,
	})
}
