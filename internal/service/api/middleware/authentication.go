// Package middleware API 서버의 공통 미들웨어를 제공합니다.
package middleware

import (
	"github.com/darkkaiser/catalog-server/internal/service/api/auth"
	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// RequireAuthentication 애플리케이션 인증을 수행하는 미들웨어를 반환합니다.
//
// 처리 과정:
//  1. App Key 추출 (X-App-Key 헤더 우선, app_key 쿼리 파라미터 폴백)
//  2. Application ID 추출 (X-Application-Id 헤더 우선, application_id 쿼리 파라미터 폴백)
//  3. Authenticator를 통한 인증 처리
//  4. 인증된 Application 객체를 Context에 저장
//
// 목록 조회(GET)와 삭제(DELETE) 요청에는 본문이 없으므로 식별 정보는
// 헤더 또는 쿼리 파라미터로만 전달받습니다. 본문 파싱은 수행하지 않습니다.
//
// 인증 실패 시:
//   - 400 Bad Request: App Key 또는 Application ID 누락
//   - 401 Unauthorized: 미등록 Application ID 또는 잘못된 App Key
//
// Panics:
//   - authenticator가 nil인 경우
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic(constants.PanicMsgAuthenticatorRequired)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 1. App Key 추출
			appKey := extractAppKey(c)
			if appKey == "" {
				return ErrAppKeyRequired
			}

			// 2. Application ID 추출
			applicationID := extractApplicationID(c)
			if applicationID == "" {
				return ErrApplicationIDRequired
			}

			// 3. 인증 처리
			app, err := authenticator.Authenticate(applicationID, appKey)
			if err != nil {
				return err
			}

			// 4. Context에 인증된 Application 저장
			auth.SetApplication(c, app)

			return next(c)
		}
	}
}

// extractAppKey App Key를 추출합니다.
//
// 우선순위:
//  1. X-App-Key 헤더 (권장)
//  2. app_key 쿼리 파라미터 (레거시) - 사용 시 경고 로그 출력
func extractAppKey(c echo.Context) string {
	appKey := c.Request().Header.Get(constants.HeaderXAppKey)
	if appKey == "" {
		appKey = c.QueryParam(constants.QueryParamAppKey)

		// 레거시 방식 사용 시 경고 로그
		if appKey != "" {
			applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
				"method":    c.Request().Method,
				"path":      c.Path(),
				"remote_ip": c.RealIP(),
			}).Warn("보안 경고: 쿼리 파라미터로 App Key 전달됨 (헤더 사용 권장)")
		}
	}
	return appKey
}

// extractApplicationID Application ID를 추출합니다.
//
// 우선순위:
//  1. X-Application-Id 헤더 (권장)
//  2. application_id 쿼리 파라미터 (레거시)
func extractApplicationID(c echo.Context) string {
	applicationID := c.Request().Header.Get(constants.HeaderXApplicationID)
	if applicationID != "" {
		return applicationID
	}

	return c.QueryParam(constants.QueryParamApplicationID)
}
