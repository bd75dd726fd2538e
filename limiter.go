package folio

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// imageRateLimit allows each client IP ImageRateLimit optimizer requests per
// minute, with the full budget available as a burst. Idle visitors expire
// from the store lazily on later requests.
func (a *App) imageRateLimit() echo.MiddlewareFunc {
	perMinute := a.Config.ImageRateLimit
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			a.metrics.imageResizes.WithLabelValues("rate_limited").Inc()
			c.Response().Header().Set("Cache-Control", "no-store")
			return c.String(http.StatusTooManyRequests, "Too many image requests. Try again later.")
		},
	})
}
