package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "상품을 찾을 수 없습니다")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, NotFound, appErr.Type())
	assert.Equal(t, "상품을 찾을 수 없습니다", appErr.Message())
	assert.NotEmpty(t, appErr.Stack(), "에러 생성 시점의 스택이 수집되어야 합니다")
	assert.Equal(t, "[NotFound] 상품을 찾을 수 없습니다", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(Conflict, "순서값 '%d'이(가) 이미 사용 중입니다", 3)
	assert.Equal(t, "[Conflict] 순서값 '3'이(가) 이미 사용 중입니다", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil 에러는 래핑하지 않음", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, System, "무시됨"))
		assert.NoError(t, Wrapf(nil, System, "무시됨 %d", 1))
	})

	t.Run("에러 체이닝", func(t *testing.T) {
		rootErr := New(Conflict, "순서값 중복")
		wrapped := Wrap(rootErr, System, "상품 등록 실패")

		assert.Contains(t, wrapped.Error(), "상품 등록 실패")
		assert.Contains(t, wrapped.Error(), "순서값 중복")
		assert.Equal(t, rootErr, RootCause(wrapped))
	})
}

func TestIs(t *testing.T) {
	err := Wrap(New(Conflict, "순서값 중복"), System, "상품 등록 실패")

	assert.True(t, Is(err, Conflict))
	assert.True(t, Is(err, System))
	assert.False(t, Is(err, NotFound))
	assert.False(t, Is(nil, Conflict))
}

func TestUnderlyingType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "단일 AppError",
			err:  New(InvalidInput, "유효하지 않은 입력"),
			want: InvalidInput,
		},
		{
			name: "래핑된 AppError 체인",
			err:  Wrap(New(Conflict, "순서값 중복"), System, "상품 등록 실패"),
			want: Conflict,
		},
		{
			name: "외부 에러를 래핑한 경우",
			err:  Wrap(context.DeadlineExceeded, Timeout, "저장소 응답 시간 초과"),
			want: Timeout,
		},
		{
			name: "AppError가 아닌 에러",
			err:  fmt.Errorf("plain error"),
			want: Unknown,
		},
		{
			name: "nil 에러",
			err:  nil,
			want: Unknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UnderlyingType(tc.err))
		})
	}
}

func TestFormat_Verbose(t *testing.T) {
	err := Wrap(New(Conflict, "순서값 중복"), System, "상품 등록 실패")

	formatted := fmt.Sprintf("%+v", err)
	assert.Contains(t, formatted, "[System] 상품 등록 실패")
	assert.Contains(t, formatted, "Caused by:")
	assert.Contains(t, formatted, "[Conflict] 순서값 중복")
	assert.Contains(t, formatted, "Stack trace:")
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "Conflict", Conflict.String())
	assert.Equal(t, "InvalidInput", InvalidInput.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}
