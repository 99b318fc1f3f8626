// Package catalog 상품 카탈로그의 오케스트레이션 계층입니다.
//
// Directory는 원격 저장소의 상품 테이블을 로컬 미러로 유지하면서, 상품의
// 추가/수정/삭제/숨김/이동 연산을 수행하고 진열 순번 불변식(1..N 빈틈없는 순번)을
// 보장합니다. 미러는 저장소 반영이 성공한 이후에만 갱신됩니다(비낙관적 갱신).
package catalog

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/form"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/ranking"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/store"
	"github.com/darkkaiser/catalog-server/internal/service/contract"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

// component Directory 로깅용 컴포넌트 이름
const component = "catalog.directory"

// Filter 상품 목록 조회 시 적용되는 필터입니다.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterVisible Filter = "visible"
	FilterHidden  Filter = "hidden"
)

// Directory 상품 카탈로그의 단일 소유자입니다.
//
// 전체 상품 집합의 로컬 미러를 배타적으로 소유하며, 외부(API 계층)는 스냅샷을
// 읽거나 연산을 요청할 수만 있습니다. 동일 상품에 대한 연산이 진행중인 상태에서
// 들어온 두 번째 연산 요청은 Conflict로 거부됩니다(이중 제출 방지).
type Directory struct {
	store store.ProductStore

	notificationSender contract.NotificationSender

	// mu 미러(products, loaded)를 보호하는 락
	mu       sync.RWMutex
	products []model.Product
	loaded   bool

	// pendingMu 상품별 진행중 연산 집합(pending)을 보호하는 락.
	// 저장소 왕복 동안 mu를 잡지 않으므로, 이중 제출 방지는 이 집합이 담당한다.
	pendingMu sync.Mutex
	pending   map[string]struct{}
}

// NewDirectory 새로운 Directory 인스턴스를 생성합니다.
// notificationSender는 저장소 장애 시 운영 알림 발송에 사용되며, nil이면 알림을 생략합니다.
func NewDirectory(productStore store.ProductStore, notificationSender contract.NotificationSender) *Directory {
	return &Directory{
		store: productStore,

		notificationSender: notificationSender,

		pending: map[string]struct{}{},
	}
}

// Load 저장소에서 전체 상품 목록을 읽어 미러를 초기화합니다.
func (d *Directory) Load(ctx context.Context) error {
	products, err := d.store.List(ctx)
	if err != nil {
		d.alertStoreFailure("상품 목록 조회", err)
		return err
	}

	d.mu.Lock()
	d.products = products
	d.loaded = true
	d.mu.Unlock()

	applog.WithComponentAndFields(component, log.Fields{
		"products": len(products),
	}).Info("상품 미러 초기화됨")

	return nil
}

// Refresh 저장소에서 전체 상품 목록을 다시 읽어 미러를 교체합니다.
// 스케줄러가 주기적으로 호출하여 외부 변경과의 불일치를 해소합니다.
func (d *Directory) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// Products 미러의 상품 목록 스냅샷을 반환합니다.
//
// 노출 상품은 진열 순번 오름차순으로 정렬되며, FilterAll의 경우 노출 상품 뒤에
// 숨김 상품이 이어집니다. 반환된 슬라이스는 호출자가 자유롭게 사용할 수 있는 복사본입니다.
func (d *Directory) Products(filter Filter) ([]model.Product, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return nil, apperrors.New(apperrors.Unavailable, "상품 미러가 아직 초기화되지 않았습니다")
	}

	visible, hidden := ranking.Partition(d.products)

	switch filter {
	case FilterVisible:
		return visible, nil
	case FilterHidden:
		return hidden, nil
	case FilterAll, "":
		return append(visible, hidden...), nil
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 필터입니다: '%s'", filter)
	}
}

// NextRank 새로 추가되는 상품에 부여할 진열 순번(노출 최대 순번 + 1)을 반환합니다.
// 상품 등록 화면의 순번 기본값으로 사용됩니다.
func (d *Directory) NextRank() (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return 0, apperrors.New(apperrors.Unavailable, "상품 미러가 아직 초기화되지 않았습니다")
	}

	visible, _ := ranking.Partition(d.products)
	return ranking.NextRank(visible), nil
}

// Add 신규 상품을 등록합니다.
//
// 제출된 진열 순번이 이미 사용중인 경우, 저장소의 UNIQUE 제약 위반을 통해
// 감지되어 Conflict 에러가 반환되며 어떠한 변경도 일어나지 않습니다.
func (d *Directory) Add(ctx context.Context, productForm *form.ProductForm) (*model.Product, error) {
	product, err := productForm.Validate()
	if err != nil {
		return nil, err
	}

	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}

	created, err := d.store.Insert(ctx, *product)
	if err != nil {
		if apperrors.UnderlyingType(err) == apperrors.Conflict {
			return nil, apperrors.Wrapf(err, apperrors.Conflict, "진열 순번 %d번은 이미 사용중입니다", product.Rank())
		}
		d.alertStoreFailure("상품 등록", err)
		return nil, err
	}

	d.mu.Lock()
	d.products = append(d.products, created)
	d.mu.Unlock()

	applog.WithComponentAndFields(component, log.Fields{
		"product_id": created.ID,
		"rank":       created.Rank(),
	}).Info("상품 등록됨")

	return &created, nil
}

// Edit 기존 상품을 수정합니다.
//
// 진열 순번을 변경하는 경우, 저장소에 동일 순번의 다른 상품이 있는지 사전
// 조회(pre-flight)하여 충돌을 미리 감지합니다.
func (d *Directory) Edit(ctx context.Context, id string, productForm *form.ProductForm) (*model.Product, error) {
	product, err := productForm.Validate()
	if err != nil {
		return nil, err
	}

	if err := d.acquire(id); err != nil {
		return nil, err
	}
	defer d.release(id)

	if _, err := d.findByID(id); err != nil {
		return nil, err
	}

	// 사전 중복 검사: 동일 순번을 사용중인 다른 상품이 있으면 거부한다.
	duplicates, err := d.store.FindByRank(ctx, product.Rank(), id)
	if err != nil {
		d.alertStoreFailure("상품 수정", err)
		return nil, err
	}
	if len(duplicates) > 0 {
		return nil, apperrors.Wrapf(store.ErrDuplicateRank, apperrors.Conflict, "진열 순번 %d번은 이미 사용중입니다", product.Rank())
	}

	updated, err := d.store.Update(ctx, id, *product)
	if err != nil {
		if apperrors.UnderlyingType(err) != apperrors.NotFound && apperrors.UnderlyingType(err) != apperrors.Conflict {
			d.alertStoreFailure("상품 수정", err)
		}
		return nil, err
	}

	d.replaceInMirror(updated)

	applog.WithComponentAndFields(component, log.Fields{
		"product_id": id,
		"rank":       updated.Rank(),
	}).Info("상품 수정됨")

	return &updated, nil
}

// Delete 상품을 삭제합니다.
//
// 삭제된 상품이 노출중이었다면 남은 노출 상품들의 순번을 재부여하고,
// 실제로 순번이 달라진 상품들만 단일 배치 호출로 저장소에 반영합니다.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if err := d.acquire(id); err != nil {
		return err
	}
	defer d.release(id)

	target, err := d.findByID(id)
	if err != nil {
		return err
	}

	if err := d.store.Delete(ctx, id); err != nil {
		if apperrors.UnderlyingType(err) != apperrors.NotFound {
			d.alertStoreFailure("상품 삭제", err)
		}
		return err
	}

	remaining := d.snapshotWithout(id)

	// 숨김 상품 삭제는 순번에 영향을 주지 않는다.
	if !target.Visible() {
		d.commitMirror(remaining)
		applog.WithComponentAndFields(component, log.Fields{"product_id": id}).Info("상품 삭제됨")
		return nil
	}

	visible, hidden := ranking.Partition(remaining)
	densified := ranking.Densify(visible)

	if err := d.store.UpsertMany(ctx, ranking.Changed(visible, densified)); err != nil {
		d.alertStoreFailure("상품 삭제 후 순번 재부여", err)
		return err
	}

	d.commitMirror(append(densified, hidden...))

	applog.WithComponentAndFields(component, log.Fields{"product_id": id}).Info("상품 삭제됨")
	return nil
}

// Hide 상품을 숨김 처리합니다.
//
// 숨김 상품은 진열 순번을 상실하며, 남은 노출 상품들의 순번이 재부여됩니다.
func (d *Directory) Hide(ctx context.Context, id string) error {
	if err := d.acquire(id); err != nil {
		return err
	}
	defer d.release(id)

	target, err := d.findByID(id)
	if err != nil {
		return err
	}
	if !target.Visible() {
		return apperrors.Newf(apperrors.InvalidInput, "상품(ID: '%s')은 이미 숨김 상태입니다", id)
	}

	hiddenProduct := target.Clone()
	hiddenProduct.ClearRank()
	hiddenProduct.IsProductHidden = true

	updated, err := d.store.Update(ctx, id, *hiddenProduct)
	if err != nil {
		if apperrors.UnderlyingType(err) != apperrors.NotFound {
			d.alertStoreFailure("상품 숨김", err)
		}
		return err
	}

	remaining := d.snapshotWithout(id)
	visible, hiddenRest := ranking.Partition(remaining)
	densified := ranking.Densify(visible)

	if err := d.store.UpsertMany(ctx, ranking.Changed(visible, densified)); err != nil {
		d.alertStoreFailure("상품 숨김 후 순번 재부여", err)
		return err
	}

	d.commitMirror(append(append(densified, hiddenRest...), updated))

	applog.WithComponentAndFields(component, log.Fields{"product_id": id}).Info("상품 숨김 처리됨")
	return nil
}

// Unhide 상품의 숨김을 해제합니다.
//
// 해제된 상품은 노출 목록의 끝(현재 노출 최대 순번 + 1)에 추가됩니다.
// 최대 순번은 미러가 아닌 저장소에서 새로 조회하여, 외부 변경과의 순번 충돌을 방지합니다.
func (d *Directory) Unhide(ctx context.Context, id string) error {
	if err := d.acquire(id); err != nil {
		return err
	}
	defer d.release(id)

	target, err := d.findByID(id)
	if err != nil {
		return err
	}
	if target.Visible() {
		return apperrors.Newf(apperrors.InvalidInput, "상품(ID: '%s')은 숨김 상태가 아닙니다", id)
	}

	maxRank, err := d.store.MaxVisibleRank(ctx)
	if err != nil {
		d.alertStoreFailure("상품 숨김 해제", err)
		return err
	}

	unhidden := target.Clone()
	unhidden.IsProductHidden = false
	unhidden.SetRank(maxRank + 1)

	updated, err := d.store.Update(ctx, id, *unhidden)
	if err != nil {
		if apperrors.UnderlyingType(err) != apperrors.NotFound {
			d.alertStoreFailure("상품 숨김 해제", err)
		}
		return err
	}

	d.replaceInMirror(updated)

	applog.WithComponentAndFields(component, log.Fields{
		"product_id": id,
		"rank":       updated.Rank(),
	}).Info("상품 숨김 해제됨")
	return nil
}

// Move 노출중인 상품을 새로운 진열 순번으로 이동시킵니다.
//
// 순번 집합은 순열 이동으로 유지되므로 사전 중복 검사가 필요 없습니다.
// 현재 순번과 동일한 순번으로의 이동과 유효 범위(1..노출 상품 수)를 벗어난
// 순번으로의 이동은 거부됩니다.
func (d *Directory) Move(ctx context.Context, id string, newRank int) error {
	if err := d.acquire(id); err != nil {
		return err
	}
	defer d.release(id)

	target, err := d.findByID(id)
	if err != nil {
		return err
	}
	if !target.Visible() {
		return apperrors.Newf(apperrors.InvalidInput, "숨김 상태의 상품(ID: '%s')은 이동할 수 없습니다", id)
	}
	if target.Rank() == newRank {
		return apperrors.Newf(apperrors.InvalidInput, "상품이 이미 진열 순번 %d번에 있습니다", newRank)
	}

	d.mu.RLock()
	visible, hidden := ranking.Partition(d.products)
	d.mu.RUnlock()

	if newRank < 1 || newRank > len(visible) {
		return apperrors.Newf(apperrors.InvalidInput, "진열 순번은 1에서 %d 사이여야 합니다 (요청값: %d)", len(visible), newRank)
	}

	moved := ranking.MoveRank(visible, id, newRank)

	if err := d.store.UpsertMany(ctx, ranking.Changed(visible, moved)); err != nil {
		d.alertStoreFailure("상품 순번 이동", err)
		return err
	}

	d.commitMirror(append(moved, hidden...))

	applog.WithComponentAndFields(component, log.Fields{
		"product_id": id,
		"new_rank":   newRank,
	}).Info("상품 순번 이동됨")
	return nil
}

// Health 디렉토리가 요청을 처리할 수 있는 상태인지 확인합니다.
// 미러가 아직 초기화되지 않았으면 Unavailable 에러를 반환합니다.
func (d *Directory) Health() error {
	return d.ensureLoaded()
}

// ------------------------------------------------------------------------------------------------
// 내부 헬퍼
// ------------------------------------------------------------------------------------------------

// ensureLoaded 미러가 초기화되었는지 확인합니다.
func (d *Directory) ensureLoaded() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return apperrors.New(apperrors.Unavailable, "상품 미러가 아직 초기화되지 않았습니다")
	}
	return nil
}

// acquire 상품에 대한 연산 진행권을 획득합니다.
// 동일 상품에 대한 연산이 이미 진행중이면 Conflict를 반환합니다(이중 제출 방지).
func (d *Directory) acquire(id string) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}

	d.pendingMu.Lock()
	defer d.pendingMu.Unlock()

	if _, inFlight := d.pending[id]; inFlight {
		return apperrors.Newf(apperrors.Conflict, "상품(ID: '%s')에 대한 다른 작업이 진행중입니다", id)
	}
	d.pending[id] = struct{}{}
	return nil
}

// release 상품에 대한 연산 진행권을 반납합니다.
func (d *Directory) release(id string) {
	d.pendingMu.Lock()
	defer d.pendingMu.Unlock()

	delete(d.pending, id)
}

// findByID 미러에서 지정된 ID의 상품을 찾습니다.
func (d *Directory) findByID(id string) (*model.Product, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.products {
		if d.products[i].ID == id {
			return d.products[i].Clone(), nil
		}
	}
	return nil, apperrors.Wrapf(store.ErrProductNotFound, apperrors.NotFound, "상품(ID: '%s')을 찾을 수 없습니다", id)
}

// snapshotWithout 지정된 ID의 상품을 제외한 미러 스냅샷을 반환합니다.
func (d *Directory) snapshotWithout(id string) []model.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make([]model.Product, 0, len(d.products))
	for i := range d.products {
		if d.products[i].ID != id {
			snapshot = append(snapshot, d.products[i])
		}
	}
	return snapshot
}

// replaceInMirror 미러에서 동일 ID의 상품을 교체합니다.
func (d *Directory) replaceInMirror(updated model.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.products {
		if d.products[i].ID == updated.ID {
			d.products[i] = updated
			return
		}
	}
	d.products = append(d.products, updated)
}

// commitMirror 미러를 새로운 상품 집합으로 교체합니다.
func (d *Directory) commitMirror(products []model.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.products = products
}

// alertStoreFailure 저장소 장애를 운영 알림 채널로 통지합니다.
func (d *Directory) alertStoreFailure(operation string, err error) {
	applog.WithComponentAndFields(component, log.Fields{
		"operation": operation,
		"error":     err,
	}).Error("저장소 반영이 실패하였습니다")

	if d.notificationSender == nil {
		return
	}

	message := fmt.Sprintf("%s 작업의 저장소 반영이 실패하였습니다.\n\n%v", operation, err)
	if notifyErr := d.notificationSender.NotifyDefaultWithError(message); notifyErr != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"error": notifyErr,
		}).Warn("운영 알림 발송이 실패하였습니다")
	}
}
