package notification

import (
	"context"
	"sync"

	"github.com/darkkaiser/catalog-server/internal/config"
	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
	"github.com/darkkaiser/catalog-server/internal/service/contract"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

// component Notification 서비스 로깅용 컴포넌트 이름
const component = "notification.service"

// Service 운영 알림 발송 서비스입니다.
//
// 설정 파일에 정의된 Notifier들을 기동하고, contract.NotificationSender 인터페이스를 통해
// 접수된 알림 요청을 해당 Notifier의 발송 대기열로 전달합니다.
// Notifier가 하나도 정의되지 않은 경우 알림 요청은 로그 기록으로 대체됩니다.
type Service struct {
	appConfig *config.AppConfig

	notifiers       map[contract.NotifierID]Notifier
	defaultNotifier Notifier

	// notifierFactory 텔레그램 Notifier 생성 함수 (테스트에서 대체 가능)
	notifierFactory func(id contract.NotifierID, botToken string, chatID int64) (Notifier, error)

	// notifiersStopWG 모든 하위 Notifier의 종료를 대기하는 WaitGroup
	notifiersStopWG *sync.WaitGroup

	running   bool
	runningMu sync.Mutex
}

// 컴파일 타임에 인터페이스 구현 여부를 검증한다.
var _ contract.NotificationSender = (*Service)(nil)

func NewService(appConfig *config.AppConfig) *Service {
	return &Service{
		appConfig: appConfig,

		notifiers: map[contract.NotifierID]Notifier{},

		notifierFactory: func(id contract.NotifierID, botToken string, chatID int64) (Notifier, error) {
			return newTelegramNotifier(id, botToken, chatID)
		},

		notifiersStopWG: &sync.WaitGroup{},
	}
}

// SetNotifierFactory Notifier 생성 함수를 교체합니다. (테스트 전용)
func (s *Service) SetNotifierFactory(factory func(id contract.NotifierID, botToken string, chatID int64) (Notifier, error)) {
	s.notifierFactory = factory
}

// Start 알림 서비스를 시작하여 설정된 Notifier들을 활성화합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Notification 서비스가 이미 시작됨!!!")
		return nil
	}

	// 1. Notifier들을 초기화 및 실행
	defaultNotifierID := contract.NotifierID(s.appConfig.Notifier.DefaultNotifierID)

	for _, telegramConfig := range s.appConfig.Notifier.Telegrams {
		h, err := s.notifierFactory(contract.NotifierID(telegramConfig.ID), telegramConfig.BotToken, telegramConfig.ChatID)
		if err != nil {
			defer serviceStopWG.Done()
			return apperrors.Wrap(err, apperrors.Internal, "Notifier 초기화 중 에러가 발생했습니다")
		}

		s.notifiers[h.ID()] = h
		if h.ID() == defaultNotifierID {
			s.defaultNotifier = h
		}

		s.notifiersStopWG.Add(1)
		go func(handler Notifier) {
			defer s.notifiersStopWG.Done()
			handler.Run(serviceStopCtx)
		}(h)

		applog.WithComponentAndFields(component, log.Fields{
			"notifier_id": h.ID(),
		}).Debug("Notifier가 Notification 서비스에 등록됨")
	}

	// 2. 기본 Notifier 존재 여부 확인
	// Notifier가 하나도 정의되지 않은 구성은 허용한다. (알림은 로그 기록으로 대체)
	if len(s.notifiers) > 0 && s.defaultNotifier == nil {
		defer serviceStopWG.Done()
		return apperrors.Newf(apperrors.NotFound, "기본 NotifierID('%s')를 찾을 수 없습니다", s.appConfig.Notifier.DefaultNotifierID)
	}

	// 3. 서비스 종료 감시 루틴 실행
	go s.waitForShutdown(serviceStopCtx, serviceStopWG)

	s.running = true

	applog.WithComponent(component).Info("Notification 서비스 시작됨")

	return nil
}

// waitForShutdown 서비스의 종료 신호를 감지하고 리소스를 안전하게 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("Notification 서비스 중지중...")

	// 등록된 모든 Notifier의 고루틴 작업이 완료(종료)될 때까지 대기한다.
	s.notifiersStopWG.Wait()

	s.runningMu.Lock()
	s.running = false
	s.notifiers = map[contract.NotifierID]Notifier{}
	s.defaultNotifier = nil
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 중지됨")
}

// NotifyWithTitle 지정된 Notifier를 통해 제목을 포함한 알림 메시지를 발송합니다.
func (s *Service) NotifyWithTitle(notifierID contract.NotifierID, title string, message string, errorOccurred bool) error {
	if message == "" {
		return contract.ErrMessageRequired
	}

	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return contract.ErrServiceStopped
	}

	h, exists := s.notifiers[notifierID]
	if !exists {
		return apperrors.Wrapf(contract.ErrNotFoundNotifier, apperrors.NotFound, "NotifierID('%s')를 찾을 수 없습니다", notifierID)
	}

	return h.Notify(title, message, errorOccurred)
}

// NotifyDefault 시스템 기본 알림 채널로 알림 메시지를 발송합니다.
func (s *Service) NotifyDefault(message string) error {
	return s.notifyDefault(message, false)
}

// NotifyDefaultWithError 시스템 기본 알림 채널로 "오류" 알림 메시지를 발송합니다.
// 원격 저장소 반영 실패 등 관리자의 주의가 필요한 상황에서 사용합니다.
func (s *Service) NotifyDefaultWithError(message string) error {
	return s.notifyDefault(message, true)
}

func (s *Service) notifyDefault(message string, errorOccurred bool) error {
	if message == "" {
		return contract.ErrMessageRequired
	}

	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return contract.ErrServiceStopped
	}

	// 기본 Notifier가 없는 구성에서는 로그 기록으로 대체한다.
	if s.defaultNotifier == nil {
		entry := applog.WithComponentAndFields(component, log.Fields{
			"notification": message,
		})
		if errorOccurred {
			entry.Error("발송할 Notifier가 구성되지 않아 알림을 로그로 대체합니다")
		} else {
			entry.Info("발송할 Notifier가 구성되지 않아 알림을 로그로 대체합니다")
		}
		return nil
	}

	return s.defaultNotifier.Notify("", message, errorOccurred)
}
