// Package version 빌드 시점에 주입되는 버전 정보를 전역으로 관리합니다.
package version

import (
	"fmt"
	"sync"
)

// Info 애플리케이션의 빌드 정보를 담는 구조체입니다.
type Info struct {
	Version     string `json:"version"`      // Git 커밋 해시 또는 태그
	BuildDate   string `json:"build_date"`   // 빌드 날짜
	BuildNumber string `json:"build_number"` // 빌드 번호
	GoVersion   string `json:"go_version"`   // 빌드에 사용된 Go 버전
	OS          string `json:"os"`           // 빌드 대상 OS
	Arch        string `json:"arch"`         // 빌드 대상 아키텍처
}

// String 버전 정보를 사람이 읽기 쉬운 형식으로 반환합니다.
func (i Info) String() string {
	return fmt.Sprintf("%s (build %s, %s)", i.Version, i.BuildNumber, i.BuildDate)
}

var (
	mu   sync.RWMutex
	info = Info{
		Version:     "dev",
		BuildDate:   "unknown",
		BuildNumber: "0",
	}
)

// Set 전역 빌드 정보를 등록합니다. 애플리케이션 시작 시점에 한 번 호출됩니다.
func Set(i Info) {
	mu.Lock()
	defer mu.Unlock()
	info = i
}

// Get 등록된 전역 빌드 정보를 반환합니다.
func Get() Info {
	mu.RLock()
	defer mu.RUnlock()
	return info
}
