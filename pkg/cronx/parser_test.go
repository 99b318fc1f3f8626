package cronx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		expectErr bool
	}{
		{"6필드 형식", "0 */10 * * * *", false},
		{"Descriptor 형식", "@hourly", false},
		{"@every 형식", "@every 5m", false},
		{"5필드 형식은 거부", "*/10 * * * *", true},
		{"빈 표현식", "", true},
		{"잘못된 필드값", "0 61 * * * *", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.spec)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
