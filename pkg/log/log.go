// Package log logrus 기반의 전역 로깅 시스템을 제공합니다.
//
// 애플리케이션 전체에서 단일한 로그 포맷과 출력 대상을 사용하도록 하며,
// lumberjack을 통한 로그 파일 로테이션을 지원합니다.
package log

import (
	log "github.com/sirupsen/logrus"
)

// fieldKeyComponent 로그가 발생한 컴포넌트를 식별하는 공통 필드 키입니다.
const fieldKeyComponent = "component"

// SetDebugMode 디버그 모드 여부에 따라 전역 로그 레벨을 조정합니다.
func SetDebugMode(debug bool) {
	if debug {
		log.SetLevel(log.TraceLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// StandardLogger 전역 logrus 로거 인스턴스를 반환합니다.
// Echo 등 외부 프레임워크의 로거 통합에 사용됩니다.
func StandardLogger() *Logger {
	return log.StandardLogger()
}

// WithFields 구조화된 필드를 포함하는 로그 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return log.WithFields(fields)
}

// WithComponent 컴포넌트 이름이 포함된 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return log.WithField(fieldKeyComponent, component)
}

// WithComponentAndFields 컴포넌트 이름과 추가 필드가 포함된 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	return log.WithField(fieldKeyComponent, component).WithFields(fields)
}
