// Package ranking 노출중인 상품들의 진열 순번(1..N 빈틈없는 순번)을 계산하는
// 순수 함수들을 제공합니다. I/O를 수행하지 않으며 입력 슬라이스를 변경하지 않습니다.
package ranking

import (
	"sort"

	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
)

// NextRank 새로 추가되는 상품에 부여할 진열 순번을 반환합니다.
// 노출중인 상품들의 최대 순번 + 1이며, 노출중인 상품이 없으면 1입니다.
func NextRank(visible []model.Product) int {
	maxRank := 0
	for i := range visible {
		if rank := visible[i].Rank(); rank > maxRank {
			maxRank = rank
		}
	}
	return maxRank + 1
}

// Densify 노출중인 상품들의 진열 순번을 1부터 시작하는 빈틈없는 순번으로 재부여합니다.
// 상품들의 상대적인 순서는 유지되며(안정 정렬), 재부여된 복사본 슬라이스를 반환합니다.
func Densify(visible []model.Product) []model.Product {
	densified := sortByRank(visible)
	for i := range densified {
		densified[i].SetRank(i + 1)
	}
	return densified
}

// MoveRank 지정된 상품을 새로운 진열 순번으로 이동시키고, 나머지 상품들의 순번을
// 한 칸씩 밀거나 당겨서 빈틈없는 순번을 유지합니다(순열 이동).
//
// movingID가 존재하지 않으면 입력의 복사본을 그대로 반환합니다.
// 순번 범위 검사와 동일 순번 이동(무의미한 이동) 거부는 호출자의 책임입니다.
func MoveRank(products []model.Product, movingID string, newRank int) []model.Product {
	sorted := sortByRank(products)

	movingIdx := -1
	for i := range sorted {
		if sorted[i].ID == movingID {
			movingIdx = i
			break
		}
	}
	if movingIdx < 0 {
		return sorted
	}

	// 이동 대상을 목록에서 제거한 후 새로운 위치에 삽입한다.
	moving := sorted[movingIdx]
	remaining := append(sorted[:movingIdx:movingIdx], sorted[movingIdx+1:]...)

	insertIdx := newRank - 1
	if insertIdx < 0 {
		insertIdx = 0
	}
	if insertIdx > len(remaining) {
		insertIdx = len(remaining)
	}

	moved := make([]model.Product, 0, len(sorted))
	moved = append(moved, remaining[:insertIdx]...)
	moved = append(moved, moving)
	moved = append(moved, remaining[insertIdx:]...)

	for i := range moved {
		moved[i].SetRank(i + 1)
	}
	return moved
}

// Partition 전체 상품 목록을 노출중인 상품(순번 오름차순 정렬)과 숨김 상품으로 분리합니다.
func Partition(all []model.Product) (visible []model.Product, hidden []model.Product) {
	for i := range all {
		if all[i].Visible() {
			visible = append(visible, all[i])
		} else {
			hidden = append(hidden, all[i])
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Rank() < visible[j].Rank()
	})
	return visible, hidden
}

// Changed 순번 재부여 전후의 상품 목록을 비교하여, 실제로 저장소에 반영이 필요한
// 상품들(순번 또는 숨김 여부가 달라진 상품)만을 추려 반환합니다.
//
// 비교는 상품 ID를 기준으로 하며, before에 존재하지 않는 상품도 반영 대상에 포함됩니다.
func Changed(before, after []model.Product) []model.Product {
	beforeByID := make(map[string]model.Product, len(before))
	for i := range before {
		beforeByID[before[i].ID] = before[i]
	}

	var changed []model.Product
	for i := range after {
		prev, exists := beforeByID[after[i].ID]
		if !exists || prev.Rank() != after[i].Rank() || prev.IsProductHidden != after[i].IsProductHidden {
			changed = append(changed, after[i])
		}
	}
	return changed
}

// sortByRank 순번 오름차순으로 안정 정렬된 복사본 슬라이스를 반환합니다.
func sortByRank(products []model.Product) []model.Product {
	sorted := append([]model.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank() < sorted[j].Rank()
	})
	return sorted
}
