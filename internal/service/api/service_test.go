package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/catalog-server/internal/config"
	"github.com/darkkaiser/catalog-server/internal/pkg/version"
	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	"github.com/darkkaiser/catalog-server/internal/service/api/model/response"
	"github.com/darkkaiser/catalog-server/internal/service/catalog"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubStore 고정된 상품 목록을 반환하는 테스트용 저장소입니다.
type stubStore struct {
	products []model.Product
}

func (s *stubStore) List(ctx context.Context) ([]model.Product, error) {
	return append([]model.Product(nil), s.products...), nil
}

func (s *stubStore) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	product.ID = "1"
	return product, nil
}

func (s *stubStore) Update(ctx context.Context, id string, product model.Product) (model.Product, error) {
	product.ID = id
	return product, nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubStore) UpsertMany(ctx context.Context, products []model.Product) error {
	return nil
}

func (s *stubStore) FindByRank(ctx context.Context, rank int, excludeID string) ([]model.Product, error) {
	return nil, nil
}

func (s *stubStore) MaxVisibleRank(ctx context.Context) (int, error) {
	return 0, nil
}

const testListenPort = 38099

func newTestService(t *testing.T) *Service {
	t.Helper()

	appConfig := &config.AppConfig{
		CatalogAPI: config.CatalogAPIConfig{
			WS:   config.WSConfig{ListenPort: testListenPort},
			CORS: config.CORSConfig{AllowOrigins: []string{"*"}},
			Applications: []config.ApplicationConfig{
				{ID: "catalog-admin", Title: "상품 관리 화면", AppKey: "test-app-key"},
			},
		},
	}

	directory := catalog.NewDirectory(&stubStore{}, nil)
	require.NoError(t, directory.Load(context.Background()))

	return NewService(appConfig, directory, nil, version.Info{Version: "test", BuildDate: "2026-09-01T00:00:00Z", BuildNumber: "1"})
}

func startService(t *testing.T, s *Service) (stop func()) {
	t.Helper()

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	serviceStopWG.Add(1)
	require.NoError(t, s.Start(serviceStopCtx, serviceStopWG))

	// 서버가 요청을 받을 수 있을 때까지 대기
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", testListenPort))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	return func() {
		cancel()
		serviceStopWG.Wait()

		// keep-alive 연결의 백그라운드 고루틴 정리 (goleak 오탐 방지)
		http.DefaultClient.CloseIdleConnections()
	}
}

func TestService_StartAndServe(t *testing.T) {
	s := newTestService(t)

	stop := startService(t, s)
	defer stop()

	t.Run("HealthEndpointWithoutAuth", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", testListenPort))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("ProductsRequireAuthentication", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/v1/products", testListenPort))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ProductsWithValidCredentials", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://localhost:%d/api/v1/products", testListenPort), nil)
		require.NoError(t, err)
		req.Header.Set(constants.HeaderXAppKey, "test-app-key")
		req.Header.Set(constants.HeaderXApplicationID, "catalog-admin")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body response.SuccessResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 0, body.ResultCode)
	})

	t.Run("ProductsWithInvalidAppKey", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://localhost:%d/api/v1/products", testListenPort), nil)
		require.NoError(t, err)
		req.Header.Set(constants.HeaderXAppKey, "wrong-key")
		req.Header.Set(constants.HeaderXApplicationID, "catalog-admin")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestService_DoubleStart(t *testing.T) {
	s := newTestService(t)

	stop := startService(t, s)
	defer stop()

	// 이미 실행중인 서비스의 중복 시작은 무시됨
	serviceStopWG := &sync.WaitGroup{}
	serviceStopWG.Add(1)
	require.NoError(t, s.Start(context.Background(), serviceStopWG))
	serviceStopWG.Wait()
}

func TestService_GracefulShutdown(t *testing.T) {
	s := newTestService(t)

	stop := startService(t, s)
	stop()

	// 종료 후에는 요청이 실패해야 함
	_, err := http.Get(fmt.Sprintf("http://localhost:%d/health", testListenPort))
	assert.Error(t, err)
}
