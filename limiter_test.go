package folio

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newLimitedApp(t *testing.T, perMinute int) (*App, echo.HandlerFunc) {
	t.Helper()
	a := New(SiteConfig{ImageRateLimit: perMinute}, ViewFuncs{}, WithSource(newFakeSource()))
	if err := a.open(); err != nil {
		t.Fatal(err)
	}
	h := a.imageRateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return a, h
}

func limitedRequest(a *App, h echo.HandlerFunc, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/_image", nil)
	req.RemoteAddr = ip + ":4321"
	rec := httptest.NewRecorder()
	if err := h(a.Echo.NewContext(req, rec)); err != nil {
		a.Echo.HTTPErrorHandler(err, a.Echo.NewContext(req, rec))
	}
	return rec.Code
}

func TestImageRateLimitBlocksAfterBudget(t *testing.T) {
	a, h := newLimitedApp(t, 2)
	ip := "203.0.113.10"

	if code := limitedRequest(a, h, ip); code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", code)
	}
	if code := limitedRequest(a, h, ip); code != http.StatusOK {
		t.Fatalf("second request = %d, want 200", code)
	}
	if code := limitedRequest(a, h, ip); code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", code)
	}
}

func TestImageRateLimitIsPerIP(t *testing.T) {
	a, h := newLimitedApp(t, 1)

	if code := limitedRequest(a, h, "203.0.113.30"); code != http.StatusOK {
		t.Fatalf("first ip = %d, want 200", code)
	}
	if code := limitedRequest(a, h, "203.0.113.31"); code != http.StatusOK {
		t.Fatalf("second ip = %d, want 200 independently", code)
	}
	if code := limitedRequest(a, h, "203.0.113.30"); code != http.StatusTooManyRequests {
		t.Fatalf("first ip again = %d, want 429", code)
	}
}
