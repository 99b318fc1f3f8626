package httputil

import (
	"net/http"

	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	"github.com/darkkaiser/catalog-server/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

// NewBadRequestError 400 Bad Request 에러를 생성합니다
func NewBadRequestError(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, response.ErrorResponse{
		ResultCode: http.StatusBadRequest,
		Message:    message,
	})
}

// NewValidationError 필드별 검증 오류 정보를 포함한 400 Bad Request 에러를 생성합니다
func NewValidationError(message string, fieldErrors map[string]string) error {
	return echo.NewHTTPError(http.StatusBadRequest, response.ErrorResponse{
		ResultCode:  http.StatusBadRequest,
		Message:     message,
		FieldErrors: fieldErrors,
	})
}

// NewUnauthorizedError 401 Unauthorized 에러를 생성합니다
func NewUnauthorizedError(message string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, response.ErrorResponse{
		ResultCode: http.StatusUnauthorized,
		Message:    message,
	})
}

// NewNotFoundError 404 Not Found 에러를 생성합니다
func NewNotFoundError(message string) error {
	return echo.NewHTTPError(http.StatusNotFound, response.ErrorResponse{
		ResultCode: http.StatusNotFound,
		Message:    message,
	})
}

// NewConflictError 409 Conflict 에러를 생성합니다
func NewConflictError(message string) error {
	return echo.NewHTTPError(http.StatusConflict, response.ErrorResponse{
		ResultCode: http.StatusConflict,
		Message:    message,
	})
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다
func NewTooManyRequestsError(message string) error {
	return echo.NewHTTPError(http.StatusTooManyRequests, response.ErrorResponse{
		ResultCode: http.StatusTooManyRequests,
		Message:    message,
	})
}

// NewInternalServerError 500 Internal Server Error 에러를 생성합니다
func NewInternalServerError(message string) error {
	return echo.NewHTTPError(http.StatusInternalServerError, response.ErrorResponse{
		ResultCode: http.StatusInternalServerError,
		Message:    message,
	})
}

// NewServiceUnavailableError 503 Service Unavailable 에러를 생성합니다
func NewServiceUnavailableError(message string) error {
	return echo.NewHTTPError(http.StatusServiceUnavailable, response.ErrorResponse{
		ResultCode: http.StatusServiceUnavailable,
		Message:    message,
	})
}

// NewGatewayTimeoutError 504 Gateway Timeout 에러를 생성합니다
func NewGatewayTimeoutError(message string) error {
	return echo.NewHTTPError(http.StatusGatewayTimeout, response.ErrorResponse{
		ResultCode: http.StatusGatewayTimeout,
		Message:    message,
	})
}

// Success 표준 성공 응답(200 OK)을 JSON 형식으로 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{
		ResultCode: 0,
		Message:    constants.MsgSuccess,
	})
}

// SuccessWithData 응답 데이터를 포함한 성공 응답을 JSON 형식으로 반환합니다.
func SuccessWithData(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, response.SuccessResponse{
		ResultCode: 0,
		Message:    constants.MsgSuccess,
		Data:       data,
	})
}
