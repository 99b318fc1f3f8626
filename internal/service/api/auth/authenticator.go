// Package auth 클라이언트 애플리케이션 인증을 담당합니다.
package auth

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/catalog-server/internal/config"
	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	"github.com/darkkaiser/catalog-server/internal/service/api/httputil"
	"github.com/darkkaiser/catalog-server/internal/service/api/model/domain"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	"github.com/darkkaiser/catalog-server/pkg/strutil"
)

// Authenticator 애플리케이션 인증을 담당하는 인증자입니다.
//
// 설정 파일에서 등록된 애플리케이션 정보를 메모리에 로드한 후,
// Application ID와 App Key를 통한 인증을 처리합니다.
//
// 동시성 안전성:
//   - sync.RWMutex를 사용하여 동시성 안전을 보장합니다.
//   - 현재는 초기화 후 읽기 전용이지만, 향후 동적 추가/삭제 기능 확장 가능합니다.
type Authenticator struct {
	mu           sync.RWMutex
	applications map[string]*domain.Application
}

// NewAuthenticator 설정에서 애플리케이션을 로드하여 Authenticator를 생성합니다.
func NewAuthenticator(appConfig *config.AppConfig) *Authenticator {
	applications := make(map[string]*domain.Application)
	for _, application := range appConfig.CatalogAPI.Applications {
		applications[application.ID] = &domain.Application{
			ID:          application.ID,
			Title:       application.Title,
			Description: application.Description,
			AppKey:      application.AppKey,
		}
	}

	return &Authenticator{
		applications: applications,
	}
}

// Authenticate 애플리케이션을 찾고 인증을 수행합니다.
// 성공 시 Application 객체를 반환하고, 실패 시 401 에러를 반환합니다.
//
// 이 메서드는 동시성 안전하며, 여러 고루틴에서 동시에 호출 가능합니다.
func (a *Authenticator) Authenticate(applicationID, appKey string) (*domain.Application, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	app, ok := a.applications[applicationID]
	if !ok {
		return nil, httputil.NewUnauthorizedError(fmt.Sprintf(constants.ErrMsgUnauthorizedNotFoundApplicationID, applicationID))
	}

	if app.AppKey != appKey {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"application_id":   applicationID,
			"received_app_key": strutil.MaskSensitiveData(appKey),
		}).Warn("APP_KEY 불일치")

		return nil, httputil.NewUnauthorizedError(fmt.Sprintf(constants.ErrMsgUnauthorizedInvalidAppKey, applicationID))
	}

	return app, nil
}
