package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/darkkaiser/catalog-server/internal/config"
	"github.com/darkkaiser/catalog-server/internal/pkg/version"
	"github.com/darkkaiser/catalog-server/internal/service"
	"github.com/darkkaiser/catalog-server/internal/service/api"
	"github.com/darkkaiser/catalog-server/internal/service/catalog"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/store"
	"github.com/darkkaiser/catalog-server/internal/service/notification"
	"github.com/darkkaiser/catalog-server/internal/service/scheduler"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const (
	// initialLoadTimeout 기동 시 상품 미러 초기 적재의 최대 대기 시간
	initialLoadTimeout = 60 * time.Second

	banner = `
   ____      _         _                 ____
  / ___|__ _| |_ __ _ | | ___   __ _    / ___|  ___ _ ____   _____ _ __
 | |   / _` + "`" + ` | __/ _` + "`" + ` || |/ _ \ / _` + "`" + ` |   \___ \ / _ \ '__\ \ / / _ \ '__|
 | |__| (_| | || (_| || | (_) | (_| |    ___) |  __/ |   \ V /  __/ |
  \____\__,_|\__\__,_||_|\___/ \__, |   |____/ \___|_|    \_/ \___|_|
                               |___/                  %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, Version)

	// 빌드 정보 설정 (전역 싱글톤 등록)
	buildInfo := version.Info{
		Version:     Version,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	version.Set(buildInfo)

	// 빌드 정보 출력
	applog.WithComponentAndFields("main", log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	// 서비스를 생성하고 초기화한다.
	notificationService := notification.NewService(appConfig)

	productStore, err := store.NewPostgREST(appConfig)
	if err != nil {
		log.Fatalf("상품 저장소 초기화 실패: %v", err)
	}

	directory := catalog.NewDirectory(productStore, notificationService)

	schedulerService := scheduler.NewService(appConfig.Catalog.Refresh, directory)
	apiService := api.NewService(appConfig, directory, notificationService, buildInfo)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{notificationService, schedulerService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// 상품 미러 초기 적재 (API 서비스가 요청을 받기 전에 완료되어야 한다)
	loadCtx, loadCancel := context.WithTimeout(serviceStopCtx, initialLoadTimeout)
	if err := directory.Load(loadCtx); err != nil {
		loadCancel()

		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("상품 미러 초기 적재 실패")

		cancel()
		serviceStopWG.Wait()

		log.Fatal("상품 미러 초기 적재 실패로 프로그램을 종료합니다")
	}
	loadCancel()

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC // Blocks here until interrupted

	// Handle shutdown
	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done
}
