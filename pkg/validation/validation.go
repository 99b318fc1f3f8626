// Package validation 설정값 검증을 위한 공용 헬퍼 함수들을 제공합니다.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/catalog-server/pkg/cronx"
)

// ValidateCronExpression Cron 표현식의 유효성을 검사합니다.
//
// 표준 Linux Cron(5필드)이 아닌, 초(Seconds) 단위를 포함하는
// 확장 포맷(6필드)을 기준으로 검증합니다. 예: "0 */10 * * * *"
func ValidateCronExpression(spec string) error {
	if err := cronx.Validate(spec); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}

// ValidateDuration 문자열이 time.ParseDuration으로 해석 가능한지 검증합니다.
func ValidateDuration(d string) error {
	if _, err := time.ParseDuration(d); err != nil {
		return fmt.Errorf("유효한 Duration 형식이 아닙니다(input=%q, 예: 30s, 500ms): %w", d, err)
	}
	return nil
}

// ValidatePort 포트 번호가 유효한 범위(1-65535) 내에 있는지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname 호스트명이 유효한 도메인명, IP 주소 또는 로컬호스트인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "localhost" {
		return nil
	}

	if ip := net.ParseIP(host); ip != nil {
		return nil
	}

	// RFC 1123 도메인명 간이 검증
	if len(host) == 0 || len(host) > 253 {
		return fmt.Errorf("호스트명 길이가 유효하지 않습니다 (host=%q)", host)
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) == 0 || len(label) > 63 {
			return fmt.Errorf("호스트명 레이블이 유효하지 않습니다 (host=%q)", host)
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("호스트명 레이블은 하이픈으로 시작하거나 끝날 수 없습니다 (host=%q)", host)
		}
	}
	return nil
}

// ValidateCORSOrigin 주어진 문자열이 유효한 CORS Origin 표준을 준수하는지 검증합니다.
//
// 'Scheme://Host[:Port]' 형식을 엄격하게 요구하며, 와일드카드('*')를 지원합니다.
// 경로, 쿼리 스트링, 프래그먼트, 사용자 자격 증명은 포함할 수 없습니다.
func ValidateCORSOrigin(origin string) error {
	trimmedOrigin := strings.TrimSpace(origin)
	if trimmedOrigin == "*" {
		return nil
	}

	if trimmedOrigin == "" {
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	}

	if strings.HasSuffix(trimmedOrigin, "/") {
		return fmt.Errorf("CORS Origin 포맷 오류: 경로 구분자('/')로 끝날 수 없습니다 (input=%q)", trimmedOrigin)
	}

	parsedURL, err := url.Parse(trimmedOrigin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패: 유효한 URL 형식이 아닙니다 (input=%q): %w", trimmedOrigin, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("CORS Origin 스키마 오류: 'http' 또는 'https'만 허용됩니다 (input=%q)", trimmedOrigin)
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("CORS Origin 포맷 오류: 경로(Path)를 포함할 수 없습니다 (input=%q)", trimmedOrigin)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("CORS Origin 포맷 오류: 쿼리 파라미터를 포함할 수 없습니다 (input=%q)", trimmedOrigin)
	}
	if parsedURL.Fragment != "" {
		return fmt.Errorf("CORS Origin 포맷 오류: URL Fragment(#)를 포함할 수 없습니다 (input=%q)", trimmedOrigin)
	}
	if parsedURL.User != nil {
		return fmt.Errorf("CORS Origin 포맷 오류: 보안 정책상 사용자 자격 증명(UserInfo)을 포함할 수 없습니다 (input=%q)", trimmedOrigin)
	}

	if portStr := parsedURL.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: 포트 번호가 유효하지 않습니다 (input=%q, port=%s)", trimmedOrigin, portStr)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: %w (input=%q)", err, trimmedOrigin)
		}
	}

	host := parsedURL.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Origin 포맷 오류: 호스트(Host) 정보가 누락되었습니다 (input=%q)", trimmedOrigin)
	}
	if err := ValidateHostname(host); err != nil {
		return fmt.Errorf("CORS Origin 호스트 유효성 검증 실패: %w", err)
	}

	return nil
}
