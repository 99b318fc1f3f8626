package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// TestNewIPRateLimiter 내부 구조체가 올바르게 초기화되는지 검증합니다.
func TestNewIPRateLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(10, 20)

	assert.NotNil(t, limiter.limiters)
	assert.Equal(t, rate.Limit(10), limiter.rate)
	assert.Equal(t, 20, limiter.burst)
	assert.Empty(t, limiter.limiters)
}

// TestIPRateLimiter_GetLimiter 동일 IP에 대해 동일한 Limiter가 재사용되는지 검증합니다.
func TestIPRateLimiter_GetLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(10, 20)

	first := limiter.getLimiter("192.0.2.1")
	second := limiter.getLimiter("192.0.2.1")
	other := limiter.getLimiter("192.0.2.2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

// TestRateLimiting_InputValidation 잘못된 설정값에 대해 panic이 발생하는지 검증합니다.
func TestRateLimiting_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		requestsPerSecond int
		burst             int
		expectPanic       bool
	}{
		{"유효한 양수 값", 10, 20, false},
		{"requestsPerSecond 0", 0, 20, true},
		{"requestsPerSecond 음수", -10, 20, true},
		{"burst 0", 10, 0, true},
		{"burst 음수", 10, -20, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.expectPanic {
				assert.Panics(t, func() {
					RateLimiting(tt.requestsPerSecond, tt.burst)
				})
			} else {
				assert.NotPanics(t, func() {
					RateLimiting(tt.requestsPerSecond, tt.burst)
				})
			}
		})
	}
}

// TestRateLimiting_BurstExceeded 버스트 허용량 초과 시 429 에러가 반환되는지 검증합니다.
func TestRateLimiting_BurstExceeded(t *testing.T) {
	t.Parallel()

	e := echo.New()
	middlewareFunc := RateLimiting(1, 2)

	handler := middlewareFunc(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func() (int, error) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = "192.0.2.1:12345"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		return rec.Code, err
	}

	// 버스트 허용량(2)까지는 성공
	for i := 0; i < 2; i++ {
		code, err := send()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, code)
	}

	// 초과 요청은 429
	_, err := send()
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
}

// TestRateLimiting_IndependentPerIP IP별로 독립적인 제한이 적용되는지 검증합니다.
func TestRateLimiting_IndependentPerIP(t *testing.T) {
	t.Parallel()

	e := echo.New()
	middlewareFunc := RateLimiting(1, 1)

	handler := middlewareFunc(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func(remoteAddr string) error {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		return handler(c)
	}

	// 첫 번째 IP의 버스트 소진
	require.NoError(t, send("192.0.2.1:12345"))
	require.Error(t, send("192.0.2.1:12345"))

	// 다른 IP는 영향받지 않음
	require.NoError(t, send("192.0.2.2:12345"))
}
