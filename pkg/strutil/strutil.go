// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import "strings"

// MaskSensitiveData 민감한 정보를 마스킹합니다.
// App Key, API Key 등의 민감 정보를 안전하게 로깅하기 위해 사용합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 3자 이하는 전체 마스킹
	if len(data) <= 3 {
		return "***"
	}

	// 앞 4자만 표시하고 나머지는 마스킹
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	// 긴 토큰은 앞 4자 + 마스킹 + 뒤 4자
	return data[:4] + "***" + data[len(data)-4:]
}

// SplitAndTrim 문자열을 구분자로 분리한 후 각 요소의 앞뒤 공백을 제거합니다.
// 공백 제거 후 빈 문자열이 된 요소는 결과에서 제외됩니다.
func SplitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
