// Package model 상품 카탈로그 도메인의 데이터 구조를 정의합니다.
package model

// 상품 판매 상태값
const (
	OfferStateOnSale   = "판매중"
	OfferStateSoldOut  = "품절"
	OfferStateUpcoming = "판매예정"
)

// Product 카탈로그에서 관리하는 상품(오퍼) 레코드입니다.
//
// OrderSellout은 노출중인 상품들 사이의 진열 순번으로, 숨김 상태가 아닌 상품들에
// 대해 1부터 시작하는 빈틈없는 순번이 항상 유지되어야 합니다.
// 숨김 처리된 상품은 순번을 가지지 않으며, 이때 OrderSellout은 nil입니다.
type Product struct {
	ID string `json:"id,omitempty"`

	// OrderSellout 노출중인 상품의 진열 순번 (1..N, 숨김 상태이면 nil)
	OrderSellout *int `json:"orderSellout"`

	Category   string `json:"category"`
	Title      string `json:"title"`
	OfferState string `json:"offerState"`

	URLProduct string `json:"urlProduct"`
	URLImage   string `json:"urlImage"`

	// StartDate, EndDate 판매 기간 (형식: 2006-01-02)
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// IsProductHidden 숨김 처리 여부. true이면 고객 노출 대상에서 제외된다.
	IsProductHidden bool `json:"isProductHidden"`
}

// Visible 상품이 고객에게 노출되는 상태인지 여부를 반환합니다.
func (p *Product) Visible() bool {
	return !p.IsProductHidden
}

// Rank 진열 순번을 반환합니다. 순번이 없는(숨김) 상품은 0을 반환합니다.
func (p *Product) Rank() int {
	if p.OrderSellout == nil {
		return 0
	}
	return *p.OrderSellout
}

// SetRank 진열 순번을 설정합니다.
func (p *Product) SetRank(rank int) {
	p.OrderSellout = &rank
}

// ClearRank 진열 순번을 제거합니다. (숨김 처리 시 사용)
func (p *Product) ClearRank() {
	p.OrderSellout = nil
}

// Clone 상품 레코드의 깊은 복사본을 반환합니다.
// 순번 포인터까지 복사하므로 원본과 복사본은 서로 영향을 주지 않습니다.
func (p *Product) Clone() *Product {
	clone := *p
	if p.OrderSellout != nil {
		rank := *p.OrderSellout
		clone.OrderSellout = &rank
	}
	return &clone
}

// Equal 두 상품 레코드의 모든 필드가 동일한지 비교합니다.
func (p *Product) Equal(other *Product) bool {
	if other == nil {
		return false
	}
	if p.Rank() != other.Rank() || (p.OrderSellout == nil) != (other.OrderSellout == nil) {
		return false
	}
	return p.ID == other.ID &&
		p.Category == other.Category &&
		p.Title == other.Title &&
		p.OfferState == other.OfferState &&
		p.URLProduct == other.URLProduct &&
		p.URLImage == other.URLImage &&
		p.StartDate == other.StartDate &&
		p.EndDate == other.EndDate &&
		p.IsProductHidden == other.IsProductHidden
}
