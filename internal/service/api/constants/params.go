package constants

// URL 쿼리 파라미터 키 상수입니다.
const (
	// QueryParamAppKey 애플리케이션 인증용 쿼리 파라미터 키 (레거시)
	QueryParamAppKey = "app_key"

	// QueryParamApplicationID 애플리케이션 식별용 쿼리 파라미터 키 (레거시)
	QueryParamApplicationID = "application_id"

	// QueryParamFilter 상품 목록 조회 시 노출 상태 필터링용 쿼리 파라미터 키
	QueryParamFilter = "filter"
)

// HTTP 헤더 키 상수입니다.
const (
	// HeaderXAppKey 애플리케이션 인증용 HTTP 헤더 키 (권장 방식)
	HeaderXAppKey = "X-App-Key"

	// HeaderXApplicationID 애플리케이션 식별용 HTTP 헤더 키 (권장 방식)
	HeaderXApplicationID = "X-Application-Id"
)

// URL 경로 파라미터 키 상수입니다.
const (
	// PathParamProductID 상품 식별자 경로 파라미터 키
	PathParamProductID = "id"
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	QueryParamAppKey,
	"api_key",
	"password",
	"token",
	"secret",
}
