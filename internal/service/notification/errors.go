package notification

import (
	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
)

var (
	// ErrQueueFull 알림 발송 대기열이 가득 차서 새로운 요청을 수락할 수 없을 때 반환하는 에러입니다.
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "알림 발송 대기열이 가득 찼습니다")

	// ErrNotifierClosed 종료된 Notifier에 발송을 요청했을 때 반환하는 에러입니다.
	ErrNotifierClosed = apperrors.New(apperrors.Unavailable, "Notifier가 이미 종료되었습니다")
)
