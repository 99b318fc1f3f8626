package contract

import (
	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
)

var (
	// ErrMessageRequired 알림의 본문 내용이 비어있거나 공백 문자로만 구성되어 있어 유효하지 않을 때 반환하는 에러입니다.
	ErrMessageRequired = apperrors.New(apperrors.InvalidInput, "알림 메시지 본문은 비워둘 수 없습니다")

	// ErrServiceStopped 알림 서비스가 실행 중이지 않은 상태에서 발송을 요청했을 때 반환하는 에러입니다.
	ErrServiceStopped = apperrors.New(apperrors.Unavailable, "Notification 서비스가 실행중이 아닙니다")

	// ErrNotFoundNotifier 지정된 ID의 Notifier가 등록되어 있지 않을 때 반환하는 에러입니다.
	ErrNotFoundNotifier = apperrors.New(apperrors.NotFound, "Notifier를 찾을 수 없습니다")
)
