// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"runtime"
	"time"

	"github.com/darkkaiser/catalog-server/internal/pkg/version"
	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	"github.com/darkkaiser/catalog-server/internal/service/api/model/system"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// HealthChecker 외부 의존성의 헬스체크를 수행하는 인터페이스입니다.
type HealthChecker interface {
	Health() error
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	healthChecker HealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(healthChecker HealthChecker, buildInfo version.Info) *Handler {
	return &Handler{
		healthChecker: healthChecker,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버와 외부 의존성의 상태를 반환합니다.
// 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	uptime := int64(time.Since(h.serverStartTime).Seconds())

	// 외부 의존성 상태 수집
	deps := make(map[string]system.DependencyStatus)

	if h.healthChecker != nil {
		if err := h.healthChecker.Health(); err != nil {
			deps[constants.DependencyCatalogDirectory] = system.DependencyStatus{
				Status:  constants.HealthStatusUnhealthy,
				Message: err.Error(),
			}
		} else {
			deps[constants.DependencyCatalogDirectory] = system.DependencyStatus{
				Status:  constants.HealthStatusHealthy,
				Message: constants.MsgDepStatusHealthy,
			}
		}
	} else {
		deps[constants.DependencyCatalogDirectory] = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: constants.MsgDepStatusNotInitialized,
		}
	}

	// 하나라도 unhealthy면 전체 상태를 unhealthy로 설정
	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       uptime,
		Dependencies: deps,
	})
}

// VersionHandler 서버의 버전 정보를 반환합니다.
// 디버깅 및 배포 버전 확인에 사용됩니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug("버전 정보 요청")

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   runtime.Version(),
	})
}
