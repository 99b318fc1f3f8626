// Package response v1 API의 응답 데이터 모델을 정의합니다.
package response

import (
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
)

// ProductList 상품 목록 조회 응답 데이터
type ProductList struct {
	// Products 조회된 상품 목록 (노출 상품은 진열 순번 오름차순)
	Products []model.Product `json:"products"`

	// TotalCount 조회된 상품 수
	TotalCount int `json:"total_count"`

	// NextOrderSellout 새 상품 등록 시 부여될 다음 진열 순번
	NextOrderSellout int `json:"next_order_sellout"`
}
