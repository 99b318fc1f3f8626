package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/catalog-server/internal/config"
	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	"github.com/darkkaiser/catalog-server/pkg/maputil"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// component PostgREST 저장소 클라이언트 로깅용 컴포넌트 이름
const component = "catalog.store.postgrest"

const (
	// rankColumn 진열 순번 컬럼명
	rankColumn = "orderSellout"

	// hiddenColumn 숨김 여부 컬럼명
	hiddenColumn = "isProductHidden"

	// maxRetryDelay 재시도 대기 시간의 상한선입니다. (지수 백오프 증가 시 상한)
	maxRetryDelay = 30 * time.Second
)

// PostgRESTSettings 설정 파일의 store.settings 항목에서 읽어들이는
// PostgREST 구현체 전용 설정입니다.
type PostgRESTSettings struct {
	// Schema 접근할 데이터베이스 스키마명 (비어있으면 서버 기본 스키마 사용)
	Schema string `json:"schema"`
}

// PostgREST PostgREST 호환 HTTP API(예: Supabase)를 통해 상품 테이블에
// 접근하는 ProductStore 구현체입니다.
//
// 멱등 메서드(GET, DELETE 등)의 요청이 일시적인 장애로 실패하면 지수 백오프와
// Full Jitter를 적용하여 재시도합니다. POST, PATCH는 데이터 중복 생성/수정 위험이
// 있으므로 재시도하지 않습니다.
type PostgREST struct {
	baseURL string
	apiKey  string
	table   string
	schema  string

	httpClient *http.Client

	maxRetries    int
	minRetryDelay time.Duration
}

// 컴파일 타임에 인터페이스 구현 여부를 검증한다.
var _ ProductStore = (*PostgREST)(nil)

// NewPostgREST 애플리케이션 설정으로부터 PostgREST 저장소 클라이언트를 생성합니다.
func NewPostgREST(appConfig *config.AppConfig) (*PostgREST, error) {
	settings, err := maputil.Decode[PostgRESTSettings](appConfig.Store.Settings)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "저장소 설정(store.settings)을 해석할 수 없습니다")
	}

	return &PostgREST{
		baseURL: appConfig.Store.BaseURL,
		apiKey:  appConfig.Store.APIKey,
		table:   appConfig.Store.Table,
		schema:  settings.Schema,

		httpClient: &http.Client{
			Timeout: appConfig.Store.TimeoutDuration(),
		},

		maxRetries:    appConfig.HTTPRetry.MaxRetries,
		minRetryDelay: appConfig.HTTPRetry.RetryDelayDuration(),
	}, nil
}

// List 전체 상품 목록을 진열 순번 오름차순으로 조회합니다.
func (s *PostgREST) List(ctx context.Context) ([]model.Product, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", rankColumn+".asc.nullslast")

	body, err := s.do(ctx, http.MethodGet, query, nil, "")
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "저장소 응답을 해석할 수 없습니다")
	}
	return products, nil
}

// Insert 신규 상품을 추가하고 저장소가 생성한 레코드를 반환합니다.
func (s *PostgREST) Insert(ctx context.Context, product model.Product) (model.Product, error) {
	payload, err := json.Marshal([]model.Product{product})
	if err != nil {
		return model.Product{}, apperrors.Wrap(err, apperrors.Internal, "상품 데이터를 직렬화할 수 없습니다")
	}

	body, err := s.do(ctx, http.MethodPost, url.Values{}, payload, "return=representation")
	if err != nil {
		return model.Product{}, err
	}

	return firstProduct(body)
}

// Update 지정된 ID의 상품을 전체 교체 방식으로 수정합니다.
func (s *PostgREST) Update(ctx context.Context, id string, product model.Product) (model.Product, error) {
	// 저장소가 레코드를 식별하므로 본문에는 ID를 포함하지 않는다.
	product.ID = ""

	payload, err := json.Marshal(product)
	if err != nil {
		return model.Product{}, apperrors.Wrap(err, apperrors.Internal, "상품 데이터를 직렬화할 수 없습니다")
	}

	query := url.Values{}
	query.Set("id", "eq."+id)

	body, err := s.do(ctx, http.MethodPatch, query, payload, "return=representation")
	if err != nil {
		return model.Product{}, err
	}

	// 수정된 레코드가 없으면 대상이 존재하지 않는 것이다.
	if !gjson.GetBytes(body, "0").Exists() {
		return model.Product{}, apperrors.Wrapf(ErrProductNotFound, apperrors.NotFound, "상품(ID: '%s')을 찾을 수 없습니다", id)
	}
	return firstProduct(body)
}

// Delete 지정된 ID의 상품을 삭제합니다.
func (s *PostgREST) Delete(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	body, err := s.do(ctx, http.MethodDelete, query, nil, "return=representation")
	if err != nil {
		return err
	}

	// 삭제된 레코드가 없으면 대상이 존재하지 않는 것이다.
	if !gjson.GetBytes(body, "0").Exists() {
		return apperrors.Wrapf(ErrProductNotFound, apperrors.NotFound, "상품(ID: '%s')을 찾을 수 없습니다", id)
	}
	return nil
}

// UpsertMany 여러 상품을 ID 기준 병합 방식으로 단일 호출로 반영합니다.
func (s *PostgREST) UpsertMany(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "상품 데이터를 직렬화할 수 없습니다")
	}

	query := url.Values{}
	query.Set("on_conflict", "id")

	_, err = s.do(ctx, http.MethodPost, query, payload, "resolution=merge-duplicates")
	return err
}

// FindByRank 지정된 진열 순번을 사용중인 상품을 조회합니다. (최대 1건)
func (s *PostgREST) FindByRank(ctx context.Context, rank int, excludeID string) ([]model.Product, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(rankColumn, "eq."+strconv.Itoa(rank))
	query.Set("limit", "1")
	if excludeID != "" {
		query.Set("id", "neq."+excludeID)
	}

	body, err := s.do(ctx, http.MethodGet, query, nil, "")
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "저장소 응답을 해석할 수 없습니다")
	}
	return products, nil
}

// MaxVisibleRank 노출중인 상품들의 최대 진열 순번을 조회합니다.
func (s *PostgREST) MaxVisibleRank(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("select", rankColumn)
	query.Set(hiddenColumn, "eq.false")
	query.Set("order", rankColumn+".desc")
	query.Set("limit", "1")

	body, err := s.do(ctx, http.MethodGet, query, nil, "")
	if err != nil {
		return 0, err
	}

	maxRank := gjson.GetBytes(body, "0."+rankColumn)
	if !maxRank.Exists() {
		return 0, nil
	}
	return int(maxRank.Int()), nil
}

// do 상품 테이블에 대한 HTTP 요청을 수행하고 응답 본문을 반환합니다.
//
// 멱등 메서드의 요청이 일시적인 장애(네트워크 오류, 408/429/5xx)로 실패하면
// 지수 백오프 + Full Jitter를 적용하여 최대 maxRetries회 재시도합니다.
func (s *PostgREST) do(ctx context.Context, method string, query url.Values, payload []byte, prefer string) ([]byte, error) {
	requestURL := s.baseURL + "/" + s.table
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	effectiveMaxRetries := s.maxRetries
	if !isIdempotentMethod(method) {
		effectiveMaxRetries = 0
	}

	var lastErr error

	for attempt := 0; attempt <= effectiveMaxRetries; attempt++ {
		if attempt > 0 {
			// 지수 백오프: 재시도 횟수가 늘어날수록 대기 시간을 2배씩 증가시킨다.
			delay := s.minRetryDelay * time.Duration(1<<(attempt-1))
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			// Full Jitter: 동시 다발적인 재시도(Thundering Herd)를 분산시킨다.
			if delay > 0 {
				delay = time.Duration(rand.Int63n(int64(delay) + 1))
			}

			applog.WithComponentAndFields(component, log.Fields{
				"method":  method,
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   lastErr,
			}).Warn("저장소 요청 재시도")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, toTransportError(ctx.Err())
			}
		}

		body, retryable, err := s.doOnce(ctx, method, requestURL, payload, prefer)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, lastErr
}

// doOnce 단일 HTTP 요청을 수행합니다. 두 번째 반환값은 재시도 가능 여부입니다.
func (s *PostgREST) doOnce(ctx context.Context, method, requestURL string, payload []byte, prefer string) ([]byte, bool, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.Internal, "저장소 요청을 생성할 수 없습니다")
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	if s.schema != "" {
		if method == http.MethodGet {
			req.Header.Set("Accept-Profile", s.schema)
		} else {
			req.Header.Set("Content-Profile", s.schema)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// 네트워크 오류는 일시적인 장애일 수 있으므로 재시도 대상이다.
		// 단, 컨텍스트 취소는 호출자의 의도이므로 즉시 중단한다.
		return nil, !errors.Is(err, context.Canceled), toTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, apperrors.Wrap(err, apperrors.Unavailable, "저장소 응답을 읽을 수 없습니다")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, false, nil
	}

	return nil, isRetryableStatus(resp.StatusCode), toStatusError(resp.StatusCode, respBody)
}

// firstProduct 저장소 응답 배열의 첫 번째 상품 레코드를 반환합니다.
func firstProduct(body []byte) (model.Product, error) {
	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return model.Product{}, apperrors.Wrap(err, apperrors.Internal, "저장소 응답을 해석할 수 없습니다")
	}
	if len(products) == 0 {
		return model.Product{}, apperrors.New(apperrors.Internal, "저장소 응답에 반영된 레코드가 없습니다")
	}
	return products[0], nil
}

// isIdempotentMethod 재시도해도 안전한 멱등 HTTP 메서드인지 여부를 반환합니다.
func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodTrace:
		return true
	default:
		// POST, PATCH: 재시도 시 데이터 중복 생성/수정 위험
		return false
	}
}

// isRetryableStatus 재시도 대상 HTTP 상태 코드인지 여부를 반환합니다.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	default:
		return statusCode >= 500
	}
}

// toTransportError 전송 계층 오류를 타입화된 에러로 변환합니다.
func toTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.Timeout, "저장소 요청이 제한 시간을 초과하였습니다")
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(err, apperrors.Internal, "저장소 요청이 취소되었습니다")
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.Wrap(err, apperrors.Timeout, "저장소 요청이 제한 시간을 초과하였습니다")
	}
	return apperrors.Wrap(err, apperrors.Unavailable, "저장소에 접속할 수 없습니다")
}

// toStatusError PostgREST 오류 응답을 타입화된 에러로 변환합니다.
//
// 응답 본문은 {"code": "...", "message": "...", "details": "..."} 형식의 JSON이며,
// SQLSTATE 23505(UNIQUE 제약 위반)는 진열 순번 충돌(Conflict)로 변환합니다.
func toStatusError(statusCode int, body []byte) error {
	sqlstate := gjson.GetBytes(body, "code").String()
	message := gjson.GetBytes(body, "message").String()

	if sqlstate == sqlstateUniqueViolation {
		return apperrors.Wrapf(ErrDuplicateRank, apperrors.Conflict, "저장소 UNIQUE 제약 위반 (%s)", message)
	}

	errType := apperrors.Unavailable
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		errType = apperrors.Unauthorized
	case statusCode == http.StatusNotFound:
		errType = apperrors.NotFound
	case statusCode == http.StatusConflict:
		errType = apperrors.Conflict
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		errType = apperrors.Timeout
	case statusCode >= 400 && statusCode < 500:
		errType = apperrors.InvalidInput
	}

	if message == "" {
		message = http.StatusText(statusCode)
	}
	return apperrors.Newf(errType, "저장소 요청이 실패하였습니다 (HTTP %d: %s)", statusCode, message)
}
