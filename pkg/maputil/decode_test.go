package maputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeSettings struct {
	Schema  string        `json:"schema"`
	Count   string        `json:"count"`
	Timeout time.Duration `json:"timeout"`
	Limit   int           `json:"limit"`
}

func TestDecode(t *testing.T) {
	input := map[string]interface{}{
		"schema":  "public",
		"count":   "exact",
		"timeout": "30s",
		"limit":   "100", // 문자열 -> int 자동 보정
		"unknown": "ignored",
	}

	settings, err := Decode[storeSettings](input)
	require.NoError(t, err)

	assert.Equal(t, "public", settings.Schema)
	assert.Equal(t, "exact", settings.Count)
	assert.Equal(t, 30*time.Second, settings.Timeout)
	assert.Equal(t, 100, settings.Limit)
}

func TestDecodeTo_NilOutput(t *testing.T) {
	err := DecodeTo(map[string]interface{}{}, nil)
	assert.Error(t, err)
}

func TestDecode_InvalidDuration(t *testing.T) {
	_, err := Decode[storeSettings](map[string]interface{}{"timeout": "abc"})
	assert.Error(t, err)
}
