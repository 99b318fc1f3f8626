package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/catalog-server/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewErrorConstructors 에러 생성자가 올바른 상태 코드와 ErrorResponse를 생성하는지 검증합니다.
func TestNewErrorConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		constructor  func(string) error
		expectedCode int
	}{
		{"BadRequest", NewBadRequestError, http.StatusBadRequest},
		{"Unauthorized", NewUnauthorizedError, http.StatusUnauthorized},
		{"NotFound", NewNotFoundError, http.StatusNotFound},
		{"Conflict", NewConflictError, http.StatusConflict},
		{"TooManyRequests", NewTooManyRequestsError, http.StatusTooManyRequests},
		{"InternalServer", NewInternalServerError, http.StatusInternalServerError},
		{"ServiceUnavailable", NewServiceUnavailableError, http.StatusServiceUnavailable},
		{"GatewayTimeout", NewGatewayTimeoutError, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.constructor("테스트 메시지")

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.expectedCode, he.Code)

			resp, ok := he.Message.(response.ErrorResponse)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, resp.ResultCode)
			assert.Equal(t, "테스트 메시지", resp.Message)
		})
	}
}

// TestSuccess 표준 성공 응답의 형식을 검증합니다.
func TestSuccess(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/124/hide", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, Success(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.ResultCode)
	assert.Equal(t, "성공", resp.Message)
	assert.Nil(t, resp.Data)
}

// TestSuccessWithData 데이터를 포함한 성공 응답의 형식을 검증합니다.
func TestSuccessWithData(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, SuccessWithData(c, http.StatusCreated, map[string]string{"id": "124"}))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp response.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.ResultCode)
	require.NotNil(t, resp.Data)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "124", data["id"])
}
