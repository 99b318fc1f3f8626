// Package notification 운영 알림(원격 저장소 반영 실패, 서비스 기동/종료 등)을
// 외부 채널(텔레그램 등)로 발송하는 서비스를 제공합니다.
package notification

import (
	"context"

	"github.com/darkkaiser/catalog-server/internal/service/contract"
)

// notifyRequest 알림 발송 요청 정보를 담고 있는 내부 데이터 구조체입니다.
//
// Service를 통해 접수된 알림 요청은 이 구조체로 포장되어,
// 내부 채널을 통해 비동기적으로 각 Notifier의 발송 고루틴에게 전달됩니다.
type notifyRequest struct {
	title         string
	message       string
	errorOccurred bool
}

// Notifier 다양한 알림 채널(예: 텔레그램 등)을 추상화한 인터페이스입니다.
type Notifier interface {
	// ID Notifier 인스턴스의 고유 식별자(ID)를 반환합니다.
	ID() contract.NotifierID

	// Run 알림 발송을 처리하는 백그라운드 워커(Consumer)를 실행합니다.
	// 이 메서드는 블로킹(Blocking)되며, 큐에 쌓인 알림 요청을 하나씩 꺼내어 실제로 전송하는 역할을 합니다.
	// Context가 취소될 때까지 실행됩니다.
	Run(ctx context.Context)

	// Notify 알림 발송 요청을 내부 버퍼(Queue)에 등록하고 즉시 반환합니다(Non-blocking).
	// 실제 전송은 Run() 메서드가 실행 중인 고루틴에서 비동기로 처리됩니다.
	//
	// 반환값:
	//   - error: 대기열 등록 성공 시 nil, 실패 시 에러 반환 (ErrQueueFull, ErrNotifierClosed 등)
	Notify(title string, message string, errorOccurred bool) error
}
