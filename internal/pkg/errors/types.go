package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	// 검증된 경로에서는 도달할 수 없는 방어적 검사 실패(예: id 없는 상품 수정 시도)에 사용합니다.
	Internal

	// System 시스템 또는 인프라 오류 (네트워크, 원격 저장소 등)
	System

	// Unauthorized 인증 실패 (App Key 불일치 등)
	Unauthorized

	// InvalidInput 잘못된 입력값 (유효성 검사 실패)
	InvalidInput

	// Conflict 리소스 충돌 (순서값 중복, 동일 상품에 대한 동시 작업 등)
	Conflict

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 서비스 일시적 사용 불가
	Unavailable
)
