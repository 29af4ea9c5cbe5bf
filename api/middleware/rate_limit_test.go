package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

func hitRateLimited(e *echo.Echo, mw echo.MiddlewareFunc, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(rate.Limit(1), 2, time.Minute)

	for i := 0; i < 2; i++ {
		if code := hitRateLimited(e, mw, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(rate.Limit(1), 2, time.Minute)

	hitRateLimited(e, mw, "10.0.0.2")
	hitRateLimited(e, mw, "10.0.0.2")
	if code := hitRateLimited(e, mw, "10.0.0.2"); code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", code)
	}
}

func TestRateLimitTracksClientsSeparately(t *testing.T) {
	e := echo.New()
	mw := RateLimit(rate.Limit(1), 1, time.Minute)

	hitRateLimited(e, mw, "10.0.0.3")
	if code := hitRateLimited(e, mw, "10.0.0.3"); code != http.StatusTooManyRequests {
		t.Fatalf("same client: status = %d, want 429", code)
	}
	if code := hitRateLimited(e, mw, "10.0.0.4"); code != http.StatusOK {
		t.Fatalf("other client: status = %d, want 200", code)
	}
}
