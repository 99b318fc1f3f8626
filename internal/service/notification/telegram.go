package notification

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/darkkaiser/catalog-server/internal/pkg/errors"
	"github.com/darkkaiser/catalog-server/internal/service/contract"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// telegramComponent 텔레그램 Notifier 로깅용 컴포넌트 이름
const telegramComponent = "notification.notifier.telegram"

const (
	// messageMaxLength 텔레그램 메시지 전송 시 허용되는 최대 문자 길이입니다.
	//
	// 텔레그램 Bot API 공식 제한은 4096자이지만, 메타데이터 오버헤드를 고려하여
	// 안전 마진을 두고 3900자로 설정했습니다. 이를 초과하는 메시지는 자동으로 분할 전송됩니다.
	messageMaxLength = 3900

	// notificationQueueSize 발송 대기열(버퍼 채널)의 크기입니다.
	notificationQueueSize = 100

	// defaultSendRate 초당 발송 허용 건수입니다.
	// 텔레그램 Bot API의 Flood Limit을 넘지 않도록 발송 속도를 제한합니다.
	defaultSendRate = 1

	// defaultSendBurst 순간적으로 허용되는 최대 발송 건수입니다.
	defaultSendBurst = 3
)

// telegramClient 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
// 테스트에서 실제 API 호출 없이 발송 동작을 검증할 수 있도록 분리되었습니다.
type telegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// telegramNotifier 텔레그램을 통한 운영 알림 발송을 담당하는 Notifier 구현체입니다.
type telegramNotifier struct {
	id contract.NotifierID

	client telegramClient
	chatID int64

	// limiter 텔레그램 Bot API의 Flood Limit을 준수하기 위한 발송 속도 제한기
	limiter *rate.Limiter

	// notificationC 알림 발송 요청들을 순차적으로 처리하기 위해 버퍼링하는 내부 채널(Queue)
	notificationC chan *notifyRequest

	// closed 종료 이후 새로운 발송 요청을 거부하기 위한 상태 플래그
	closed   bool
	closedMu sync.RWMutex
}

// newTelegramNotifier 지정된 봇 토큰으로 텔레그램 API에 접속하여 Notifier를 생성합니다.
func newTelegramNotifier(id contract.NotifierID, botToken string, chatID int64) (*telegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 봇 API 접속에 실패했습니다")
	}

	applog.WithComponentAndFields(telegramComponent, log.Fields{
		"notifier_id": id,
		"bot_name":    bot.Self.UserName,
	}).Debug("텔레그램 봇 API 접속됨")

	return newTelegramNotifierWithClient(id, bot, chatID), nil
}

// newTelegramNotifierWithClient 외부에서 생성된 클라이언트를 주입받아 Notifier를 생성합니다.
func newTelegramNotifierWithClient(id contract.NotifierID, client telegramClient, chatID int64) *telegramNotifier {
	return &telegramNotifier{
		id: id,

		client: client,
		chatID: chatID,

		limiter: rate.NewLimiter(rate.Limit(defaultSendRate), defaultSendBurst),

		notificationC: make(chan *notifyRequest, notificationQueueSize),
	}
}

func (n *telegramNotifier) ID() contract.NotifierID {
	return n.id
}

// Notify 알림 발송 요청을 대기열에 등록합니다.
// 대기열이 가득 찬 경우 요청을 버리고 ErrQueueFull을 반환합니다(Backpressure).
func (n *telegramNotifier) Notify(title string, message string, errorOccurred bool) error {
	n.closedMu.RLock()
	defer n.closedMu.RUnlock()

	if n.closed {
		return ErrNotifierClosed
	}

	select {
	case n.notificationC <- &notifyRequest{title: title, message: message, errorOccurred: errorOccurred}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run 대기열에 쌓인 알림 요청을 하나씩 꺼내어 텔레그램으로 전송합니다.
// Context가 취소되면 대기열에 남은 요청을 처리하지 않고 종료합니다.
func (n *telegramNotifier) Run(ctx context.Context) {
	applog.WithComponentAndFields(telegramComponent, log.Fields{
		"notifier_id": n.id,
	}).Debug("텔레그램 Notifier 실행됨")

	for {
		select {
		case req := <-n.notificationC:
			n.send(ctx, req)

		case <-ctx.Done():
			n.closedMu.Lock()
			n.closed = true
			n.closedMu.Unlock()

			applog.WithComponentAndFields(telegramComponent, log.Fields{
				"notifier_id": n.id,
				"dropped":     len(n.notificationC),
			}).Debug("텔레그램 Notifier 종료됨")

			return
		}
	}
}

// send 알림 메시지를 포맷팅하고 길이 제한에 맞게 분할하여 전송합니다.
func (n *telegramNotifier) send(ctx context.Context, req *notifyRequest) {
	for _, chunk := range splitMessage(formatMessage(req), messageMaxLength) {
		// Flood Limit 준수를 위해 발송 속도를 제한한다.
		if err := n.limiter.Wait(ctx); err != nil {
			return
		}

		if _, err := n.client.Send(tgbotapi.NewMessage(n.chatID, chunk)); err != nil {
			applog.WithComponentAndFields(telegramComponent, log.Fields{
				"notifier_id": n.id,
				"error":       err,
			}).Error("텔레그램 메시지 전송이 실패하였습니다")
			return
		}
	}
}

// formatMessage 알림 요청을 텔레그램 전송용 본문으로 변환합니다.
func formatMessage(req *notifyRequest) string {
	var sb strings.Builder

	if req.errorOccurred {
		sb.WriteString("[오류]")
		if req.title != "" {
			sb.WriteString(" ")
		}
	}
	if req.title != "" {
		sb.WriteString(req.title)
	}
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	sb.WriteString(req.message)
	sb.WriteString("\n\n")
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))

	return sb.String()
}

// splitMessage 메시지를 최대 길이 이하의 조각들로 분할합니다.
//
// 가독성을 위해 우선 줄바꿈 단위로 자르며, 한 줄 자체가 최대 길이를 초과하는
// 경우에만 문자(rune) 단위로 강제 분할합니다.
func splitMessage(message string, maxLength int) []string {
	if len([]rune(message)) <= maxLength {
		return []string{message}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(message, "\n") {
		lineRunes := []rune(line)

		// 한 줄 자체가 최대 길이를 초과하는 경우 강제 분할
		for len(lineRunes) > maxLength {
			flush()
			chunks = append(chunks, string(lineRunes[:maxLength]))
			lineRunes = lineRunes[maxLength:]
		}

		// 현재 조각에 이어붙일 수 없으면 새로운 조각을 시작
		if currentLen > 0 && currentLen+1+len(lineRunes) > maxLength {
			flush()
		}

		if currentLen > 0 {
			current.WriteString("\n")
			currentLen++
		}
		current.WriteString(string(lineRunes))
		currentLen += len(lineRunes)
	}
	flush()

	return chunks
}
