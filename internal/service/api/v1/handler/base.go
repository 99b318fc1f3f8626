// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 이 패키지는 HTTP 요청을 받아 검증하고, 비즈니스 로직을 호출한 후,
// 적절한 HTTP 응답을 반환하는 핸들러 함수들을 포함합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/catalog-server/internal/service/catalog"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/form"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
)

// ProductDirectory 상품 디렉토리의 비즈니스 로직을 추상화한 인터페이스입니다.
//
// 핸들러는 이 인터페이스를 통해서만 상품 연산에 접근하므로,
// 테스트 시 실제 저장소 없이 목(mock) 구현체로 대체할 수 있습니다.
type ProductDirectory interface {
	Products(filter catalog.Filter) ([]model.Product, error)
	NextRank() (int, error)
	Add(ctx context.Context, productForm *form.ProductForm) (*model.Product, error)
	Edit(ctx context.Context, id string, productForm *form.ProductForm) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Hide(ctx context.Context, id string) error
	Unhide(ctx context.Context, id string) error
	Move(ctx context.Context, id string, newRank int) error
}

// Handler v1 API 요청을 처리하고 비즈니스 로직을 연결하는 핸들러입니다.
//
// 이 구조체는 다음 역할을 수행합니다:
//   - HTTP 요청 바인딩 및 검증
//   - 비즈니스 로직(상품 디렉토리 연산) 호출
//   - HTTP 응답 생성
type Handler struct {
	// directory 상품 등록/수정/삭제/이동 등의 비즈니스 로직을 담당하는 디렉토리
	directory ProductDirectory
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(directory ProductDirectory) *Handler {
	if directory == nil {
		panic("상품 디렉토리는 필수입니다")
	}

	return &Handler{
		directory: directory,
	}
}
