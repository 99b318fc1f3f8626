// Package domain API 계층에서 사용하는 도메인 모델을 정의합니다.
package domain

// Application 상품 관리 API를 사용하도록 등록된 클라이언트 애플리케이션입니다.
type Application struct {
	ID          string
	Title       string
	Description string
	AppKey      string
}
