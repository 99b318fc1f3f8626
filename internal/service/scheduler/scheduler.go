// Package scheduler 상품 미러의 주기적인 재동기화(Refresh)를 Cron 스케줄에 맞춰
// 자동으로 실행하는 서비스를 제공합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/catalog-server/internal/config"
	"github.com/darkkaiser/catalog-server/pkg/cronx"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// refreshTimeout 미러 재동기화 1회 실행의 최대 허용 시간
const refreshTimeout = 5 * time.Minute

// Refresher 상품 미러를 원격 저장소와 재동기화하는 인터페이스입니다.
// catalog.Directory가 이 인터페이스를 구현합니다.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler 설정된 Cron 스케줄에 맞춰 상품 미러를 재동기화하는 서비스입니다.
//
// 외부 경로(다른 관리 도구, DB 직접 수정 등)로 변경된 상품 데이터와
// 로컬 미러 사이의 불일치를 주기적으로 해소합니다.
type Scheduler struct {
	refreshConfig config.RefreshConfig

	cron *cron.Cron

	refresher Refresher

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(refreshConfig config.RefreshConfig, refresher Refresher) *Scheduler {
	if refresher == nil {
		panic("Refresher는 필수입니다")
	}

	return &Scheduler{
		refreshConfig: refreshConfig,

		refresher: refresher,
	}
}

// Start 스케줄러를 시작하고 미러 재동기화 작업을 Cron 엔진에 등록합니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Scheduler 서비스 시작중...")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 시작됨!!!")
		return nil
	}

	if !s.refreshConfig.Runnable {
		applog.WithComponent(component).Info("미러 재동기화 스케줄이 비활성화되어 있어 Scheduler는 대기만 합니다")

		go func() {
			defer serviceStopWG.Done()
			<-serviceStopCtx.Done()
		}()

		s.running = true
		return nil
	}

	// 1. Cron 엔진 초기화
	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: Panic 발생 시 복구
	// - SkipIfStillRunning: 이전 재동기화가 끝나지 않았으면 다음 실행을 건너뜀
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	// 2. 재동기화 작업 등록
	if _, err := s.cron.AddFunc(s.refreshConfig.TimeSpec, func() {
		s.runRefresh(serviceStopCtx)
	}); err != nil {
		serviceStopWG.Done()
		return err
	}

	// 3. 스케줄러 시작
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, log.Fields{
		"time_spec": s.refreshConfig.TimeSpec,
	}).Info("Scheduler 서비스 시작됨")

	// 4. 종료 신호 대기
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 안전하게 중지합니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("Scheduler 서비스 중지중...")

	// Cron 엔진 중지 및 실행 중인 작업 완료 대기
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 중지됨")
}

// runRefresh 미러 재동기화를 1회 실행합니다.
func (s *Scheduler) runRefresh(serviceStopCtx context.Context) {
	ctx, cancel := context.WithTimeout(serviceStopCtx, refreshTimeout)
	defer cancel()

	applog.WithComponent(component).Debug("상품 미러 재동기화 시작")

	if err := s.refresher.Refresh(ctx); err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"error": err,
		}).Error("상품 미러 재동기화가 실패하였습니다")
		return
	}

	applog.WithComponent(component).Info("상품 미러 재동기화 완료")
}
