package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronExpression(t *testing.T) {
	assert.NoError(t, ValidateCronExpression("0 */10 * * * *"))
	assert.NoError(t, ValidateCronExpression("@hourly"))
	assert.Error(t, ValidateCronExpression("*/10 * * * *"), "5필드 형식은 거부되어야 합니다")
	assert.Error(t, ValidateCronExpression(""))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration("30s"))
	assert.NoError(t, ValidateDuration("500ms"))
	assert.Error(t, ValidateDuration("30"))
	assert.Error(t, ValidateDuration("abc"))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}

func TestValidateCORSOrigin(t *testing.T) {
	tests := []struct {
		name      string
		origin    string
		expectErr bool
	}{
		{"와일드카드", "*", false},
		{"https 도메인", "https://example.com", false},
		{"포트 포함", "http://localhost:3000", false},
		{"IPv4", "http://192.168.0.10", false},
		{"빈 문자열", "", true},
		{"스키마 없음", "example.com", true},
		{"잘못된 스키마", "ftp://example.com", true},
		{"경로 포함", "https://example.com/admin", true},
		{"후행 슬래시", "https://example.com/", true},
		{"쿼리 포함", "https://example.com?a=1", true},
		{"자격 증명 포함", "https://user:pw@example.com", true},
		{"잘못된 포트", "https://example.com:99999", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCORSOrigin(tc.origin)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
