// Package config 애플리케이션 설정 파일(catalog-server.json)의 로드와 검증을 담당합니다.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
	appvalidator "github.com/darkkaiser/catalog-server/internal/pkg/validator"
	"github.com/darkkaiser/catalog-server/pkg/validation"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "catalog-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 환경 변수 오버라이드에 사용되는 접두사입니다.
	envPrefix = "CATALOG_"

	// ------------------------------------------------------------------------------------------------
	// 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultMaxRetries 원격 저장소 요청 실패 시 최대 재시도 횟수 기본값
	DefaultMaxRetries = 3

	// DefaultRetryDelay 재시도 사이의 대기 시간 기본값
	DefaultRetryDelay = "2s"

	// DefaultStoreTable 상품 컬렉션의 기본 테이블명
	DefaultStoreTable = "listProducts"

	// DefaultStoreTimeout 원격 저장소 요청의 기본 타임아웃
	DefaultStoreTimeout = "30s"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	Store      StoreConfig      `json:"store"`
	HTTPRetry  HTTPRetryConfig  `json:"http_retry"`
	Catalog    CatalogConfig    `json:"catalog"`
	Notifier   NotifierConfig   `json:"notifiers"`
	CatalogAPI CatalogAPIConfig `json:"catalog_api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := c.Store.validate(); err != nil {
		return err
	}

	if err := c.HTTPRetry.validate(); err != nil {
		return err
	}

	if err := c.Catalog.validate(); err != nil {
		return err
	}

	if err := c.Notifier.validate(); err != nil {
		return err
	}

	if err := c.CatalogAPI.validate(); err != nil {
		return err
	}

	return nil
}

// StoreConfig 원격 상품 저장소(PostgREST 호환 API) 접속 정보를 정의하는 설정 구조체
type StoreConfig struct {
	BaseURL string `json:"base_url" validate:"required,httpurl" korean:"저장소 주소"`
	APIKey  string `json:"api_key" validate:"required" korean:"저장소 API Key"`
	Table   string `json:"table" validate:"required" korean:"상품 테이블명"`
	Timeout string `json:"timeout"`

	// Settings 저장소 구현체별 자유 형식 설정입니다. (스키마명, 카운트 방식 등)
	// 구현체가 maputil.Decode를 통해 타입 구조체로 변환하여 사용합니다.
	Settings map[string]interface{} `json:"settings"`
}

func (c *StoreConfig) validate() error {
	if err := appvalidator.Struct(c); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("저장소(store) 설정이 유효하지 않습니다: %s", appvalidator.FormatValidationError(err)))
	}

	if err := validation.ValidateDuration(c.Timeout); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "저장소 타임아웃(store.timeout) 설정이 올바르지 않습니다")
	}

	return nil
}

// TimeoutDuration 설정된 저장소 타임아웃을 time.Duration으로 반환합니다.
// 설정값은 validate에서 이미 검증되었으므로 파싱 실패 시 기본값을 반환합니다.
func (c *StoreConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultStoreTimeout)
	}
	return d
}

// HTTPRetryConfig 원격 저장소 요청 실패 시 재시도 횟수와 대기 시간을 정의하는 설정 구조체
type HTTPRetryConfig struct {
	MaxRetries int    `json:"max_retries"`
	RetryDelay string `json:"retry_delay"`
}

func (c *HTTPRetryConfig) validate() error {
	if c.MaxRetries < 0 {
		return apperrors.Newf(apperrors.InvalidInput, "HTTP 재시도 횟수(max_retries)는 0 이상이어야 합니다 (설정값: %d)", c.MaxRetries)
	}
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("HTTP 재시도 대기 시간(retry_delay) 설정이 올바르지 않습니다: '%s' (예: 1s, 500ms)", c.RetryDelay))
	}
	return nil
}

// RetryDelayDuration 설정된 재시도 대기 시간을 time.Duration으로 반환합니다.
func (c *HTTPRetryConfig) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		d, _ = time.ParseDuration(DefaultRetryDelay)
	}
	return d
}

// CatalogConfig 상품 디렉토리 동작 방식을 정의하는 설정 구조체
type CatalogConfig struct {
	Refresh RefreshConfig `json:"refresh"`
}

func (c *CatalogConfig) validate() error {
	return c.Refresh.validate()
}

// RefreshConfig 로컬 미러를 원격 저장소와 주기적으로 재동기화하는 스케줄 설정 구조체
type RefreshConfig struct {
	Runnable bool   `json:"runnable"`
	TimeSpec string `json:"time_spec"`
}

func (c *RefreshConfig) validate() error {
	if !c.Runnable {
		return nil
	}
	if err := validation.ValidateCronExpression(c.TimeSpec); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "미러 재동기화 스케줄(catalog.refresh.time_spec) 설정이 유효하지 않습니다")
	}
	return nil
}

// NotifierConfig 운영 알림 채널(텔레그램 등)을 정의하는 설정 구조체
//
// Notifier가 하나도 정의되지 않은 경우 운영 알림은 로그 기록으로 대체됩니다.
type NotifierConfig struct {
	DefaultNotifierID string           `json:"default_notifier_id"`
	Telegrams         []TelegramConfig `json:"telegrams"`
}

func (c *NotifierConfig) validate() error {
	if err := checkUniqueField(c.Telegrams, func(t TelegramConfig) string { return t.ID }, "Notifier"); err != nil {
		return err
	}

	var notifierIDs []string
	for _, telegram := range c.Telegrams {
		if err := appvalidator.Struct(telegram); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("Telegram Notifier['%s'] 설정이 유효하지 않습니다: %s", telegram.ID, appvalidator.FormatValidationError(err)))
		}
		notifierIDs = append(notifierIDs, telegram.ID)
	}

	// Notifier가 정의된 경우에만 기본 Notifier ID를 검사한다.
	if len(notifierIDs) > 0 && !slices.Contains(notifierIDs, c.DefaultNotifierID) {
		return apperrors.Newf(apperrors.NotFound, "기본 NotifierID('%s')가 정의된 Notifier 목록에 존재하지 않습니다", c.DefaultNotifierID)
	}

	return nil
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체
type TelegramConfig struct {
	ID       string `json:"id" validate:"required" korean:"Notifier ID"`
	BotToken string `json:"bot_token" validate:"required" korean:"봇 토큰"`
	ChatID   int64  `json:"chat_id" validate:"required" korean:"채팅 ID"`
}

// CatalogAPIConfig 상품 관리 REST API 서버 설정 구조체
type CatalogAPIConfig struct {
	WS           WSConfig            `json:"ws"`
	CORS         CORSConfig          `json:"cors"`
	Applications []ApplicationConfig `json:"applications"`
}

func (c *CatalogAPIConfig) validate() error {
	if err := c.WS.validate(); err != nil {
		return err
	}

	if err := c.CORS.validate(); err != nil {
		return err
	}

	if err := checkUniqueField(c.Applications, func(a ApplicationConfig) string { return a.ID }, "Application"); err != nil {
		return err
	}
	for _, application := range c.Applications {
		if err := appvalidator.Struct(application); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("Application['%s'] 설정이 유효하지 않습니다: %s", application.ID, appvalidator.FormatValidationError(err)))
		}
	}

	return nil
}

// WSConfig HTTP/HTTPS 서버의 수신 포트와 TLS 설정을 정의하는 구조체
type WSConfig struct {
	ListenPort  int    `json:"listen_port"`
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file"`
	TLSKeyFile  string `json:"tls_key_file"`
}

func (c *WSConfig) validate() error {
	if err := validation.ValidatePort(c.ListenPort); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "API 서버 수신 포트(catalog_api.ws.listen_port) 설정이 유효하지 않습니다")
	}

	if c.TLSServer {
		if c.TLSCertFile == "" || c.TLSKeyFile == "" {
			return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 인증서 파일(tls_cert_file)과 키 파일(tls_key_file)이 모두 필요합니다")
		}
	}

	return nil
}

// CORSConfig CORS에서 허용할 Origin 목록을 정의하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins"`
}

func (c *CORSConfig) validate() error {
	for _, origin := range c.AllowOrigins {
		if err := validation.ValidateCORSOrigin(origin); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "CORS 설정(catalog_api.cors.allow_origins)이 유효하지 않습니다")
		}
	}
	return nil
}

// ApplicationConfig 상품 관리 API를 사용할 수 있는 클라이언트 애플리케이션의 인증 정보를 정의하는 구조체
type ApplicationConfig struct {
	ID          string `json:"id" validate:"required" korean:"애플리케이션 ID"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AppKey      string `json:"app_key" validate:"required" korean:"App Key"`
}

// checkUniqueField 설정 목록 내에서 식별자가 중복되지 않는지 검사합니다.
func checkUniqueField[T any](items []T, keyOf func(T) string, kind string) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := keyOf(item)
		if _, exists := seen[key]; exists {
			return apperrors.Newf(apperrors.Conflict, "%s ID('%s')가 중복 정의되었습니다", kind, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// normalizeEnvKey 환경 변수명을 koanf 설정 키로 변환합니다.
// 예: CATALOG_STORE__API_KEY -> store.api_key
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 로드 우선순위(낮음 → 높음): 기본값 → JSON 설정 파일 → 환경 변수(CATALOG_ 접두사)
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"http_retry.max_retries": DefaultMaxRetries,
		"http_retry.retry_delay": DefaultRetryDelay,
		"store.table":            DefaultStoreTable,
		"store.timeout":          DefaultStoreTimeout,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 접두사: CATALOG_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: CATALOG_STORE__API_KEY -> store.api_key
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
			Result:           &appConfig, // koanf v2.1.x는 호출자가 DecoderConfig를 지정하면 Result를 채우지 않음
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
