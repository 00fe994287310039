package echo

import (
	"errors"
	"net/http"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/middleware"
	"github.com/EngKARANGWA/rugalika-backend/services"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// PortalAPI holds the handler dependencies.
type PortalAPI struct {
	auth      *services.AuthService
	news      *services.NewsService
	feedback  *services.FeedbackService
	requests  *services.HelpRequestService
	uploads   *services.UploadService
	analytics *services.AnalyticsService
	limiter   *middleware.RedisLimiter
}

// NewPortalAPI initializes the portal API.
func NewPortalAPI(
	auth *services.AuthService,
	news *services.NewsService,
	feedback *services.FeedbackService,
	requests *services.HelpRequestService,
	uploads *services.UploadService,
	analytics *services.AnalyticsService,
	limiter *middleware.RedisLimiter,
) *PortalAPI {
	return &PortalAPI{
		auth:      auth,
		news:      news,
		feedback:  feedback,
		requests:  requests,
		uploads:   uploads,
		analytics: analytics,
		limiter:   limiter,
	}
}

// RegisterRoutes registers the portal routes. The two code endpoints carry
// tight per-IP rate limits since 6-digit codes are guessable in a way signed
// tokens are not.
func (a *PortalAPI) RegisterRoutes(e *echo.Echo) {
	requireAuth := middleware.RequireAuth(a.auth)
	optionalAuth := middleware.OptionalAuth(a.auth)

	auth := e.Group("/api/auth")
	auth.POST("/send-code", a.SendCodeHandler,
		middleware.RateLimit(a.limiter, "send-code", 5, time.Minute))
	auth.POST("/verify-code", a.VerifyCodeHandler,
		middleware.RateLimit(a.limiter, "verify-code", 10, time.Minute))
	auth.POST("/refresh", a.RefreshHandler)
	auth.POST("/logout", a.LogoutHandler)
	auth.GET("/me", a.MeHandler, requireAuth)
	auth.POST("/purge-expired", a.PurgeExpiredHandler, requireAuth, middleware.RequireRole(domain.RoleAdmin))

	news := e.Group("/api/news")
	news.GET("", a.ListNewsHandler, optionalAuth)
	news.GET("/:id", a.GetNewsHandler, optionalAuth)
	news.POST("", a.CreateNewsHandler, requireAuth,
		middleware.RequirePermission(services.ResourceNews, services.ActionCreate))
	news.PUT("/:id", a.UpdateNewsHandler, requireAuth,
		middleware.RequirePermission(services.ResourceNews, services.ActionUpdate))
	news.DELETE("/:id", a.DeleteNewsHandler, requireAuth,
		middleware.RequirePermission(services.ResourceNews, services.ActionDelete))

	feedback := e.Group("/api/feedback", requireAuth)
	feedback.POST("", a.SubmitFeedbackHandler,
		middleware.RequirePermission(services.ResourceFeedback, services.ActionCreate))
	feedback.GET("/news/:newsId", a.ListFeedbackHandler,
		middleware.RequirePermission(services.ResourceFeedback, services.ActionRead))
	feedback.GET("/pending", a.ListPendingFeedbackHandler,
		middleware.RequirePermission(services.ResourceFeedback, services.ActionRespond))
	feedback.POST("/:id/respond", a.RespondFeedbackHandler,
		middleware.RequirePermission(services.ResourceFeedback, services.ActionRespond))

	requests := e.Group("/api/help-requests", requireAuth)
	requests.POST("", a.SubmitHelpRequestHandler,
		middleware.RequirePermission(services.ResourceHelpRequests, services.ActionCreate))
	requests.GET("/mine", a.ListMyHelpRequestsHandler)
	requests.GET("/:id", a.GetHelpRequestHandler)
	requests.GET("/department/:dept", a.ListDepartmentHelpRequestsHandler,
		middleware.RequirePermission(services.ResourceHelpRequests, services.ActionUpdate))
	requests.POST("/:id/status", a.TransitionHelpRequestHandler,
		middleware.RequirePermission(services.ResourceHelpRequests, services.ActionUpdate))

	uploads := e.Group("/api/uploads", requireAuth)
	uploads.POST("", a.UploadHandler,
		middleware.RequirePermission(services.ResourceUploads, services.ActionCreate))
	uploads.GET("/:id", a.DownloadHandler)

	e.GET("/api/analytics/summary", a.AnalyticsSummaryHandler, requireAuth,
		middleware.RequirePermission(services.ResourceAnalytics, services.ActionRead))
}

// apiError maps service error kinds onto HTTP responses. Storage and unknown
// failures are logged in full and reported generically.
func apiError(c echo.Context, err error) error {
	var apiErr *serrors.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(http.StatusBadRequest, apiErr)
	}

	switch {
	case errors.Is(err, serrors.ErrInvalidOrExpiredCode):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("invalid or expired code"))
	case errors.Is(err, serrors.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, serrors.NewNotFound("account not found"))
	case errors.Is(err, serrors.ErrAccountInactive):
		return c.JSON(http.StatusForbidden, serrors.NewForbidden("account is inactive"))
	case errors.Is(err, serrors.ErrInvalidRefreshToken),
		errors.Is(err, serrors.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("invalid token"))
	case errors.Is(err, serrors.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("token expired"))
	case errors.Is(err, serrors.ErrTokenRevoked):
		return c.JSON(http.StatusUnauthorized, serrors.NewUnauthorized("token revoked"))
	case errors.Is(err, serrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, serrors.NewForbidden("not allowed"))
	case errors.Is(err, serrors.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, &serrors.APIError{
			Code: serrors.CodeConflict, Description: "invalid status transition",
		})
	case errors.Is(err, serrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, serrors.NewNotFound("resource not found"))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, serrors.NewServerError("internal error"))
	}
}
