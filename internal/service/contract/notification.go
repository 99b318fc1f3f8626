package contract

// NotificationSender 알림 발송 기능을 제공하는 인터페이스입니다.
// API 서버, 상품 디렉토리와 같은 클라이언트는 이 인터페이스를 통해 운영 알림을 발송합니다.
type NotificationSender interface {
	// NotifyWithTitle 지정된 Notifier를 통해 제목을 포함한 알림 메시지를 발송합니다.
	// errorOccurred 플래그를 통해 해당 알림이 오류 상황에 대한 것인지 명시할 수 있습니다.
	//
	// 파라미터:
	//   - notifierID: 알림을 발송할 대상 Notifier의 식별자
	//   - title: 알림 메시지의 제목
	//   - message: 전송할 메시지 내용
	//   - errorOccurred: 오류 발생 여부
	//
	// 반환값:
	//   - error: 발송 요청이 정상적으로 큐에 등록(실제 전송 결과와는 무관)되면 nil, 실패 시 에러 반환 (ErrServiceStopped, ErrNotFoundNotifier 등)
	NotifyWithTitle(notifierID NotifierID, title string, message string, errorOccurred bool) error

	// NotifyDefault 시스템에 설정된 기본 Notifier를 통해 알림 메시지를 발송합니다.
	//
	// 반환값:
	//   - error: 발송 요청이 정상적으로 큐에 등록(실제 전송 결과와는 무관)되면 nil, 실패 시 에러 반환
	NotifyDefault(message string) error

	// NotifyDefaultWithError 시스템에 설정된 기본 Notifier를 통해 "오류" 성격의 알림 메시지를 발송합니다.
	// 원격 저장소 반영 실패 등 관리자의 주의가 필요한 긴급 상황 알림에 적합합니다.
	//
	// 반환값:
	//   - error: 발송 요청이 정상적으로 큐에 등록(실제 전송 결과와는 무관)되면 nil, 실패 시 에러 반환
	NotifyDefaultWithError(message string) error
}
