// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 애플리케이션의 생명주기에 맞춰 시작/종료되는 장기 실행 서비스 인터페이스입니다.
//
// 구현체는 Start 호출 시 백그라운드 고루틴을 기동하고, serviceStopCtx가 취소되면
// 정리 작업을 수행한 후 serviceStopWG.Done()을 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
