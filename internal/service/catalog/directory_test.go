package catalog

import (
	"context"
	"sync"
	"testing"

	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/form"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/store"
	"github.com/darkkaiser/catalog-server/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore 함수 필드로 동작을 주입받는 테스트용 ProductStore
type mockStore struct {
	listFunc           func(ctx context.Context) ([]model.Product, error)
	insertFunc         func(ctx context.Context, product model.Product) (model.Product, error)
	updateFunc         func(ctx context.Context, id string, product model.Product) (model.Product, error)
	deleteFunc         func(ctx context.Context, id string) error
	upsertManyFunc     func(ctx context.Context, products []model.Product) error
	findByRankFunc     func(ctx context.Context, rank int, excludeID string) ([]model.Product, error)
	maxVisibleRankFunc func(ctx context.Context) (int, error)

	mu          sync.Mutex
	upsertCalls [][]model.Product
}

var _ store.ProductStore = (*mockStore)(nil)

func (m *mockStore) List(ctx context.Context) ([]model.Product, error) {
	if m.listFunc == nil {
		return nil, nil
	}
	return m.listFunc(ctx)
}

func (m *mockStore) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	if m.insertFunc == nil {
		return product, nil
	}
	return m.insertFunc(ctx, product)
}

func (m *mockStore) Update(ctx context.Context, id string, product model.Product) (model.Product, error) {
	if m.updateFunc == nil {
		product.ID = id
		return product, nil
	}
	return m.updateFunc(ctx, id, product)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, id)
}

func (m *mockStore) UpsertMany(ctx context.Context, products []model.Product) error {
	m.mu.Lock()
	m.upsertCalls = append(m.upsertCalls, products)
	m.mu.Unlock()

	if m.upsertManyFunc == nil {
		return nil
	}
	return m.upsertManyFunc(ctx, products)
}

func (m *mockStore) FindByRank(ctx context.Context, rank int, excludeID string) ([]model.Product, error) {
	if m.findByRankFunc == nil {
		return nil, nil
	}
	return m.findByRankFunc(ctx, rank, excludeID)
}

func (m *mockStore) MaxVisibleRank(ctx context.Context) (int, error) {
	if m.maxVisibleRankFunc == nil {
		return 0, nil
	}
	return m.maxVisibleRankFunc(ctx)
}

func (m *mockStore) lastUpsert() []model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.upsertCalls) == 0 {
		return nil
	}
	return m.upsertCalls[len(m.upsertCalls)-1]
}

// fakeSender 운영 알림 발송 요청을 수집하는 테스트용 NotificationSender
type fakeSender struct {
	mu       sync.Mutex
	messages []string
}

var _ contract.NotificationSender = (*fakeSender)(nil)

func (s *fakeSender) NotifyWithTitle(notifierID contract.NotifierID, title string, message string, errorOccurred bool) error {
	return s.NotifyDefault(message)
}

func (s *fakeSender) NotifyDefault(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)
	return nil
}

func (s *fakeSender) NotifyDefaultWithError(message string) error {
	return s.NotifyDefault(message)
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.messages)
}

func newVisible(id string, rank int) model.Product {
	p := model.Product{
		ID:         id,
		Category:   "과일",
		Title:      "성주 꿀참외 1.5kg",
		OfferState: model.OfferStateOnSale,
		URLProduct: "https://shop.example.com/products/" + id,
		URLImage:   "https://shop.example.com/images/" + id + ".jpg",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-30",
	}
	p.SetRank(rank)
	return p
}

func newHidden(id string) model.Product {
	p := newVisible(id, 0)
	p.ClearRank()
	p.IsProductHidden = true
	return p
}

func validForm(rank string) *form.ProductForm {
	return &form.ProductForm{
		OrderSellout: rank,
		Category:     "과일",
		Title:        "성주 꿀참외 1.5kg",
		OfferState:   "판매중",
		URLProduct:   "https://shop.example.com/products/new",
		URLImage:     "https://shop.example.com/images/new.jpg",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-30",
	}
}

// newLoadedDirectory 지정된 상품 집합으로 초기화된 Directory를 생성합니다.
func newLoadedDirectory(t *testing.T, m *mockStore, products ...model.Product) *Directory {
	t.Helper()

	if m.listFunc == nil {
		m.listFunc = func(ctx context.Context) ([]model.Product, error) {
			return append([]model.Product(nil), products...), nil
		}
	}

	d := NewDirectory(m, nil)
	require.NoError(t, d.Load(context.Background()))
	return d
}

func productIDs(products []model.Product) []string {
	result := make([]string, 0, len(products))
	for i := range products {
		result = append(result, products[i].ID)
	}
	return result
}

func TestDirectory_LoadAndProducts(t *testing.T) {
	d := newLoadedDirectory(t, &mockStore{},
		newVisible("v2", 2), newHidden("h1"), newVisible("v1", 1),
	)

	t.Run("VisibleSortedByRank", func(t *testing.T) {
		visible, err := d.Products(FilterVisible)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2"}, productIDs(visible))
	})

	t.Run("HiddenOnly", func(t *testing.T) {
		hidden, err := d.Products(FilterHidden)
		require.NoError(t, err)
		assert.Equal(t, []string{"h1"}, productIDs(hidden))
	})

	t.Run("AllIsVisibleThenHidden", func(t *testing.T) {
		all, err := d.Products(FilterAll)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v2", "h1"}, productIDs(all))
	})

	t.Run("UnknownFilterRejected", func(t *testing.T) {
		_, err := d.Products(Filter("unknown"))
		require.Error(t, err)
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
	})
}

func TestDirectory_NotLoaded(t *testing.T) {
	d := NewDirectory(&mockStore{}, nil)

	_, err := d.Products(FilterAll)
	require.Error(t, err)
	assert.Equal(t, apperrors.Unavailable, apperrors.UnderlyingType(err))

	err = d.Delete(context.Background(), "p-1")
	assert.Equal(t, apperrors.Unavailable, apperrors.UnderlyingType(err))
}

func TestDirectory_NextRank(t *testing.T) {
	t.Run("EmptyCatalog", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{})

		rank, err := d.NextRank()
		require.NoError(t, err)
		assert.Equal(t, 1, rank)
	})

	t.Run("AfterMaxRank", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{}, newVisible("v1", 1), newVisible("v2", 5), newHidden("h1"))

		rank, err := d.NextRank()
		require.NoError(t, err)
		assert.Equal(t, 6, rank)
	})
}

func TestDirectory_Add(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		m := &mockStore{
			insertFunc: func(ctx context.Context, product model.Product) (model.Product, error) {
				product.ID = "generated-id"
				return product, nil
			},
		}
		d := newLoadedDirectory(t, m, newVisible("v1", 1))

		created, err := d.Add(context.Background(), validForm("2"))
		require.NoError(t, err)
		assert.Equal(t, "generated-id", created.ID)
		assert.Equal(t, 2, created.Rank())

		all, err := d.Products(FilterAll)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("DuplicateRankRejectedWithoutWrite", func(t *testing.T) {
		// 제출된 순번이 기존 노출 상품의 순번과 같으면 Conflict로 거부되고 미러는 변하지 않아야 한다.
		m := &mockStore{
			insertFunc: func(ctx context.Context, product model.Product) (model.Product, error) {
				return model.Product{}, store.ErrDuplicateRank
			},
		}
		d := newLoadedDirectory(t, m, newVisible("v1", 1))

		_, err := d.Add(context.Background(), validForm("1"))

		require.Error(t, err)
		assert.Equal(t, apperrors.Conflict, apperrors.UnderlyingType(err))
		assert.ErrorIs(t, err, store.ErrDuplicateRank)

		all, err := d.Products(FilterAll)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("InvalidFormRejected", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{}, newVisible("v1", 1))

		_, err := d.Add(context.Background(), validForm("abc"))

		var fieldErrors form.FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Contains(t, fieldErrors, "order_sellout")
	})
}

func TestDirectory_Edit(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		m := &mockStore{}
		d := newLoadedDirectory(t, m, newVisible("v1", 1))

		f := validForm("1")
		f.Title = "수정된 상품명입니다"

		updated, err := d.Edit(context.Background(), "v1", f)
		require.NoError(t, err)
		assert.Equal(t, "수정된 상품명입니다", updated.Title)

		all, err := d.Products(FilterAll)
		require.NoError(t, err)
		assert.Equal(t, "수정된 상품명입니다", all[0].Title)
	})

	t.Run("PreflightDuplicateRankRejected", func(t *testing.T) {
		var capturedRank int
		var capturedExcludeID string

		m := &mockStore{
			findByRankFunc: func(ctx context.Context, rank int, excludeID string) ([]model.Product, error) {
				capturedRank = rank
				capturedExcludeID = excludeID
				return []model.Product{newVisible("v2", 2)}, nil
			},
		}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newVisible("v2", 2))

		_, err := d.Edit(context.Background(), "v1", validForm("2"))

		require.Error(t, err)
		assert.Equal(t, apperrors.Conflict, apperrors.UnderlyingType(err))
		assert.Equal(t, 2, capturedRank)
		assert.Equal(t, "v1", capturedExcludeID)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{}, newVisible("v1", 1))

		_, err := d.Edit(context.Background(), "missing", validForm("1"))
		assert.Equal(t, apperrors.NotFound, apperrors.UnderlyingType(err))
	})
}

func TestDirectory_Delete(t *testing.T) {
	t.Run("DensifiesRemainingVisible", func(t *testing.T) {
		// 순번 [1,2,3]에서 2번(v2)을 삭제하면 남은 상품이 [1,2]로 재부여되어야 한다.
		m := &mockStore{}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newVisible("v2", 2), newVisible("v3", 3))

		require.NoError(t, d.Delete(context.Background(), "v2"))

		// 순번이 실제로 달라진 상품(v3)만 배치 반영 대상이어야 한다.
		changed := m.lastUpsert()
		require.Len(t, changed, 1)
		assert.Equal(t, "v3", changed[0].ID)
		assert.Equal(t, 2, changed[0].Rank())

		visible, err := d.Products(FilterVisible)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v3"}, productIDs(visible))
		assert.Equal(t, 1, visible[0].Rank())
		assert.Equal(t, 2, visible[1].Rank())
	})

	t.Run("HiddenProductDeletedWithoutRenumbering", func(t *testing.T) {
		m := &mockStore{}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newHidden("h1"))

		require.NoError(t, d.Delete(context.Background(), "h1"))

		assert.Empty(t, m.upsertCalls)

		all, err := d.Products(FilterAll)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1"}, productIDs(all))
	})

	t.Run("RenumberFailureLeavesMirrorUntouched", func(t *testing.T) {
		m := &mockStore{
			upsertManyFunc: func(ctx context.Context, products []model.Product) error {
				return apperrors.New(apperrors.Unavailable, "저장소에 접속할 수 없습니다")
			},
		}
		sender := &fakeSender{}

		listProducts := []model.Product{newVisible("v1", 1), newVisible("v2", 2)}
		m.listFunc = func(ctx context.Context) ([]model.Product, error) {
			return append([]model.Product(nil), listProducts...), nil
		}

		d := NewDirectory(m, sender)
		require.NoError(t, d.Load(context.Background()))

		err := d.Delete(context.Background(), "v1")
		require.Error(t, err)
		assert.Equal(t, apperrors.Unavailable, apperrors.UnderlyingType(err))

		// 미러는 갱신되지 않고, 운영 알림이 발송되어야 한다.
		all, err2 := d.Products(FilterAll)
		require.NoError(t, err2)
		assert.Len(t, all, 2)
		assert.Equal(t, 1, sender.count())
	})
}

func TestDirectory_Hide(t *testing.T) {
	t.Run("ClearsRankAndDensifies", func(t *testing.T) {
		// 순번 [1,2,3]에서 2번(v2)을 숨기면 남은 [1,3]이 [1,2]로 재부여되어야 한다.
		m := &mockStore{}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newVisible("v2", 2), newVisible("v3", 3))

		require.NoError(t, d.Hide(context.Background(), "v2"))

		visible, err := d.Products(FilterVisible)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v3"}, productIDs(visible))
		assert.Equal(t, 2, visible[1].Rank())

		hidden, err := d.Products(FilterHidden)
		require.NoError(t, err)
		require.Len(t, hidden, 1)
		assert.Equal(t, "v2", hidden[0].ID)
		assert.Nil(t, hidden[0].OrderSellout)
		assert.True(t, hidden[0].IsProductHidden)
	})

	t.Run("AlreadyHiddenRejected", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{}, newHidden("h1"))

		err := d.Hide(context.Background(), "h1")
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
	})
}

func TestDirectory_Unhide(t *testing.T) {
	t.Run("AppendsAtFreshMaxRank", func(t *testing.T) {
		// 노출 최대 순번은 미러가 아닌 저장소에서 새로 조회해야 한다.
		maxRankCalled := false
		m := &mockStore{
			maxVisibleRankFunc: func(ctx context.Context) (int, error) {
				maxRankCalled = true
				return 5, nil
			},
		}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newHidden("h1"))

		require.NoError(t, d.Unhide(context.Background(), "h1"))
		assert.True(t, maxRankCalled)

		visible, err := d.Products(FilterVisible)
		require.NoError(t, err)
		require.Len(t, visible, 2)

		// 목록 끝(6번)에 추가되어야 한다.
		assert.Equal(t, "h1", visible[1].ID)
		assert.Equal(t, 6, visible[1].Rank())
		assert.False(t, visible[1].IsProductHidden)
	})

	t.Run("VisibleProductRejected", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{}, newVisible("v1", 1))

		err := d.Unhide(context.Background(), "v1")
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
	})
}

func TestDirectory_Move(t *testing.T) {
	t.Run("PermutationShift", func(t *testing.T) {
		// 순번 [1,2,3,4]에서 4번(v4)을 2번으로 이동하면 v4→2, v2→3, v3→4, v1은 그대로여야 한다.
		m := &mockStore{}
		d := newLoadedDirectory(t, m,
			newVisible("v1", 1), newVisible("v2", 2), newVisible("v3", 3), newVisible("v4", 4),
		)

		require.NoError(t, d.Move(context.Background(), "v4", 2))

		visible, err := d.Products(FilterVisible)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1", "v4", "v2", "v3"}, productIDs(visible))

		// 순번이 달라진 상품(v4, v2, v3)만 배치 반영 대상이어야 한다.
		changed := m.lastUpsert()
		assert.ElementsMatch(t, []string{"v4", "v2", "v3"}, productIDs(changed))
	})

	t.Run("SameRankRejected", func(t *testing.T) {
		m := &mockStore{}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newVisible("v2", 2))

		err := d.Move(context.Background(), "v2", 2)

		require.Error(t, err)
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
		assert.Empty(t, m.upsertCalls)
	})

	t.Run("OutOfRangeRejected", func(t *testing.T) {
		m := &mockStore{}
		d := newLoadedDirectory(t, m, newVisible("v1", 1), newVisible("v2", 2))

		for _, newRank := range []int{0, -1, 3, 100} {
			err := d.Move(context.Background(), "v1", newRank)
			require.Error(t, err, "newRank=%d", newRank)
			assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
		}
		assert.Empty(t, m.upsertCalls)
	})

	t.Run("HiddenProductRejected", func(t *testing.T) {
		d := newLoadedDirectory(t, &mockStore{}, newVisible("v1", 1), newHidden("h1"))

		err := d.Move(context.Background(), "h1", 1)
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
	})
}

func TestDirectory_DoubleSubmitRejected(t *testing.T) {
	// 동일 상품에 대한 연산이 진행중인 동안 들어온 두 번째 연산은 Conflict로 거부되어야 한다.
	blockDelete := make(chan struct{})
	deleteEntered := make(chan struct{})

	m := &mockStore{
		deleteFunc: func(ctx context.Context, id string) error {
			close(deleteEntered)
			<-blockDelete
			return nil
		},
	}
	d := newLoadedDirectory(t, m, newVisible("v1", 1))

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- d.Delete(context.Background(), "v1")
	}()

	<-deleteEntered

	// 첫 번째 연산이 저장소 왕복 중인 동안 두 번째 연산을 시도한다.
	err := d.Delete(context.Background(), "v1")
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.UnderlyingType(err))

	close(blockDelete)
	require.NoError(t, <-firstDone)

	// 첫 번째 연산이 끝난 뒤에는 진행권이 반납되어야 한다.
	err = d.Delete(context.Background(), "v1")
	assert.Equal(t, apperrors.NotFound, apperrors.UnderlyingType(err))
}

func TestDirectory_Refresh(t *testing.T) {
	callCount := 0
	m := &mockStore{
		listFunc: func(ctx context.Context) ([]model.Product, error) {
			callCount++
			if callCount == 1 {
				return []model.Product{newVisible("v1", 1)}, nil
			}
			return []model.Product{newVisible("v1", 1), newVisible("v2", 2)}, nil
		},
	}

	d := NewDirectory(m, nil)
	require.NoError(t, d.Load(context.Background()))

	all, err := d.Products(FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, d.Refresh(context.Background()))

	all, err = d.Products(FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
