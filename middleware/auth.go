package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const userContextKey = "auth_user"

// RequireAuth rejects requests without a valid, unrevoked bearer token and
// stashes the authenticated user on the echo context.
func RequireAuth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized(err.Error()))
			}

			user, err := auth.AuthenticateRequest(c.Request().Context(), token)
			if err != nil {
				return authError(c, err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves a user when a valid token is present and stays
// silent otherwise. For endpoints that personalize but do not gate.
func OptionalAuth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, err := bearerToken(c); err == nil {
				if user := auth.GetUserFromToken(c.Request().Context(), token); user != nil {
					c.Set(userContextKey, user)
				}
			}
			return next(c)
		}
	}
}

// RequireRole runs after RequireAuth and gates on an exact role.
func RequireRole(role domain.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !services.HasRole(UserFrom(c), role) {
				return c.JSON(http.StatusForbidden, serrors.NewForbidden("insufficient role"))
			}
			return next(c)
		}
	}
}

// RequirePermission runs after RequireAuth and consults the policy table.
func RequirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !services.CanAccess(UserFrom(c), resource, action) {
				return c.JSON(http.StatusForbidden, serrors.NewForbidden("permission denied"))
			}
			return next(c)
		}
	}
}

// UserFrom returns the authenticated user set by RequireAuth/OptionalAuth,
// or nil.
func UserFrom(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format: expected Bearer token")
	}
	return parts[1], nil
}

func authError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, serrors.ErrTokenRevoked):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("token revoked"))
	case errors.Is(err, serrors.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("token expired"))
	case errors.Is(err, serrors.ErrInvalidToken),
		errors.Is(err, serrors.ErrUserNotFound),
		errors.Is(err, serrors.ErrAccountInactive):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("invalid token"))
	default:
		log.Error().Err(err).Msg("authentication failed")
		return c.JSON(http.StatusInternalServerError, serrors.NewServerError("authentication unavailable"))
	}
}
