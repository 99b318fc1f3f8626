// Package v1 상품 관리 API의 v1 버전 라우트를 정의하고 설정합니다.
//
// 이 패키지는 /api/v1 경로 하위의 모든 엔드포인트를 관리하며,
// 상품 카탈로그 관리를 위한 RESTful API를 제공합니다.
//
// 주요 엔드포인트:
//   - GET    /api/v1/products             - 상품 목록 조회
//   - POST   /api/v1/products             - 상품 등록
//   - PUT    /api/v1/products/:id         - 상품 수정
//   - DELETE /api/v1/products/:id         - 상품 삭제
//   - POST   /api/v1/products/:id/hide    - 상품 숨김 처리
//   - POST   /api/v1/products/:id/unhide  - 상품 노출 처리
//   - POST   /api/v1/products/:id/move    - 상품 진열 순번 이동
//
// 모든 엔드포인트는 애플리케이션 인증(app_key)을 요구하며,
// 인증 미들웨어를 통해 요청을 검증합니다.
package v1

import (
	"github.com/darkkaiser/catalog-server/internal/service/api/auth"
	"github.com/darkkaiser/catalog-server/internal/service/api/middleware"
	"github.com/darkkaiser/catalog-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// SetupRoutes Echo 인스턴스에 v1 API 라우트를 설정합니다.
//
// /api/v1 그룹을 생성하고, 인증 미들웨어를 적용한 후
// 상품 관리 엔드포인트를 등록합니다.
func SetupRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	// 1. API v1 그룹 생성 (/api/v1 prefix)
	v1Group := e.Group("/api/v1")

	// 2. 인증 미들웨어 적용 (app_key 검증)
	v1Group.Use(middleware.RequireAuthentication(authenticator))

	// 3. 상품 관리 엔드포인트 등록
	v1Group.GET("/products", h.ListProductsHandler)
	v1Group.POST("/products", h.AddProductHandler)
	v1Group.PUT("/products/:id", h.EditProductHandler)
	v1Group.DELETE("/products/:id", h.DeleteProductHandler)
	v1Group.POST("/products/:id/hide", h.HideProductHandler)
	v1Group.POST("/products/:id/unhide", h.UnhideProductHandler)
	v1Group.POST("/products/:id/move", h.MoveProductHandler)
}
