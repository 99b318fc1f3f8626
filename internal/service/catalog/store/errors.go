package store

import (
	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
)

// sqlstateUniqueViolation PostgreSQL의 UNIQUE 제약 위반 오류 코드(SQLSTATE)입니다.
const sqlstateUniqueViolation = "23505"

var (
	// ErrDuplicateRank 요청된 진열 순번이 이미 다른 상품에 의해 사용중일 때 반환하는 에러입니다.
	ErrDuplicateRank = apperrors.New(apperrors.Conflict, "이미 사용중인 진열 순번입니다")

	// ErrProductNotFound 지정된 ID의 상품이 저장소에 존재하지 않을 때 반환하는 에러입니다.
	ErrProductNotFound = apperrors.New(apperrors.NotFound, "상품을 찾을 수 없습니다")
)
