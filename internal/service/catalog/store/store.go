// Package store 원격 상품 저장소에 대한 접근 계층을 제공합니다.
//
// 저장소는 PostgREST 호환 HTTP API(예: Supabase)로 호스팅되는 단일 상품 테이블이며,
// 이 패키지는 테이블에 대한 CRUD와 순번 조회 연산을 추상화합니다.
package store

import (
	"context"

	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
)

// ProductStore 원격 상품 테이블에 대한 접근 인터페이스입니다.
type ProductStore interface {
	// List 전체 상품 목록을 진열 순번 오름차순으로 조회합니다. (숨김 상품 포함)
	List(ctx context.Context) ([]model.Product, error)

	// Insert 신규 상품을 추가하고 저장소가 생성한 레코드(ID 포함)를 반환합니다.
	// 진열 순번이 이미 사용중인 경우 ErrDuplicateRank를 반환합니다.
	Insert(ctx context.Context, product model.Product) (model.Product, error)

	// Update 지정된 ID의 상품을 전체 교체 방식으로 수정하고 수정된 레코드를 반환합니다.
	// 진열 순번이 이미 사용중인 경우 ErrDuplicateRank를, 대상이 없으면 NotFound 에러를 반환합니다.
	Update(ctx context.Context, id string, product model.Product) (model.Product, error)

	// Delete 지정된 ID의 상품을 삭제합니다.
	Delete(ctx context.Context, id string) error

	// UpsertMany 여러 상품을 ID 기준 병합(merge-duplicates) 방식으로 단일 호출로 반영합니다.
	// 순번 재부여 결과와 같이 다수의 레코드를 한꺼번에 갱신할 때 사용합니다.
	UpsertMany(ctx context.Context, products []model.Product) error

	// FindByRank 지정된 진열 순번을 사용중인 상품을 조회합니다. (최대 1건)
	// excludeID가 비어있지 않으면 해당 ID의 상품은 조회 대상에서 제외됩니다.
	FindByRank(ctx context.Context, rank int, excludeID string) ([]model.Product, error)

	// MaxVisibleRank 노출중인 상품들의 최대 진열 순번을 조회합니다. (노출 상품이 없으면 0)
	MaxVisibleRank(ctx context.Context) (int, error)
}
