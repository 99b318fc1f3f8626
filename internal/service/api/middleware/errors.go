package middleware

import (
	"net/http"

	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	"github.com/darkkaiser/catalog-server/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

var (
	// ErrAppKeyRequired API 호출 자격 증명인 App Key가 누락되었을 때 반환하는 에러입니다.
	// X-App-Key 헤더 또는 app_key 쿼리 파라미터를 통해 전달되어야 합니다.
	ErrAppKeyRequired = httputil.NewBadRequestError(constants.ErrMsgAppKeyRequired)

	// ErrApplicationIDRequired 식별 대상인 Application ID가 요청에 포함되지 않았을 때 반환하는 에러입니다.
	// X-Application-Id 헤더 또는 application_id 쿼리 파라미터를 통해 전달되어야 합니다.
	ErrApplicationIDRequired = httputil.NewBadRequestError(constants.ErrMsgApplicationIDRequired)

	// ErrBodyTooLarge 요청 본문의 크기가 서버 허용 한도(BodyLimit)를 초과했을 때 반환하는 표준 413 에러입니다.
	ErrBodyTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, constants.ErrMsgRequestEntityTooLarge)

	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환할 표준 HTTP 429(Too Many Requests) 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
)
