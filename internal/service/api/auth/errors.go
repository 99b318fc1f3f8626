package auth

import (
	"errors"
)

var (
	// ErrApplicationMissingInContext Context 내에서 필수 애플리케이션 정보를 조회할 수 없을 때 반환하는 에러입니다.
	ErrApplicationMissingInContext = errors.New("Context에서 애플리케이션 정보를 찾을 수 없습니다")

	// ErrApplicationTypeMismatch Context에 저장된 객체가 예상된 *domain.Application 타입이 아닐 때 반환하는 타입 단언(Type Assertion) 에러입니다.
	ErrApplicationTypeMismatch = errors.New("Context에 저장된 애플리케이션 정보의 타입이 올바르지 않습니다")
)
