package notification

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/catalog-server/internal/service/contract"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTelegramClient 실제 API 호출 없이 전송된 메시지를 수집하는 테스트용 클라이언트
type fakeTelegramClient struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
}

func (c *fakeTelegramClient) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg, ok := chattable.(tgbotapi.MessageConfig); ok {
		c.messages = append(c.messages, msg)
	}
	return tgbotapi.Message{}, nil
}

func (c *fakeTelegramClient) sentTexts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	texts := make([]string, 0, len(c.messages))
	for _, m := range c.messages {
		texts = append(texts, m.Text)
	}
	return texts
}

func TestTelegramNotifier_NotifyAndRun(t *testing.T) {
	client := &fakeTelegramClient{}
	n := newTelegramNotifierWithClient(contract.NotifierID("ops"), client, 12345)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		n.Run(ctx)
	}()

	require.NoError(t, n.Notify("재고 반영 실패", "원격 저장소 반영 중 오류가 발생하였습니다", true))

	// 비동기 발송이 완료될 때까지 대기
	require.Eventually(t, func() bool {
		return len(client.sentTexts()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	sent := client.sentTexts()[0]
	assert.Contains(t, sent, "[오류] 재고 반영 실패")
	assert.Contains(t, sent, "원격 저장소 반영 중 오류가 발생하였습니다")
	assert.Equal(t, int64(12345), client.messages[0].ChatID)

	cancel()
	<-runDone

	// 종료 이후의 발송 요청은 거부되어야 한다.
	err := n.Notify("", "늦게 도착한 메시지", false)
	assert.ErrorIs(t, err, ErrNotifierClosed)
}

func TestTelegramNotifier_QueueFull(t *testing.T) {
	client := &fakeTelegramClient{}
	n := newTelegramNotifierWithClient(contract.NotifierID("ops"), client, 12345)

	// Run()을 실행하지 않아 대기열이 소비되지 않는 상태에서 버퍼를 가득 채운다.
	for i := 0; i < notificationQueueSize; i++ {
		require.NoError(t, n.Notify("", "메시지", false))
	}

	err := n.Notify("", "초과 메시지", false)
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestFormatMessage(t *testing.T) {
	t.Parallel()

	t.Run("WithTitleAndError", func(t *testing.T) {
		got := formatMessage(&notifyRequest{title: "상품 갱신 실패", message: "본문", errorOccurred: true})

		assert.True(t, strings.HasPrefix(got, "[오류] 상품 갱신 실패\n\n본문"))
	})

	t.Run("MessageOnly", func(t *testing.T) {
		got := formatMessage(&notifyRequest{message: "본문"})

		assert.True(t, strings.HasPrefix(got, "본문"))
		assert.NotContains(t, got, "[오류]")
	})
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	t.Run("ShortMessageSingleChunk", func(t *testing.T) {
		chunks := splitMessage("짧은 메시지", 100)
		assert.Equal(t, []string{"짧은 메시지"}, chunks)
	})

	t.Run("SplitsOnLineBoundary", func(t *testing.T) {
		message := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)

		chunks := splitMessage(message, 100)

		require.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 60), chunks[0])
		assert.Equal(t, strings.Repeat("b", 60), chunks[1])
	})

	t.Run("ForceSplitsOversizedLine", func(t *testing.T) {
		message := strings.Repeat("한", 250)

		chunks := splitMessage(message, 100)

		require.Len(t, chunks, 3)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len([]rune(chunk)), 100)
		}
		assert.Equal(t, message, strings.Join(chunks, ""))
	})
}
