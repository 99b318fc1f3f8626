// Package validator go-playground/validator 기반의 전역 검증기를 제공합니다.
//
// 설정 구조체와 상품 입력 폼이 동일한 검증 규칙과 에러 메시지 형식을
// 사용하도록 단일 인스턴스를 공유합니다.
package validator

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// validate 전역 validator 인스턴스입니다.
	validate *validator.Validate

	// validateOnce validator 초기화가 정확히 한 번만 실행되도록 보장합니다.
	validateOnce sync.Once
)

// rankPattern 순서값(orderSellout) 입력 형식: 1~3자리 숫자 문자열
var rankPattern = regexp.MustCompile(`^[0-9]{1,3}$`)

// isoDateLayout 상품 노출 기간 날짜 형식 (시간 요소 없는 ISO 8601)
const isoDateLayout = "2006-01-02"

// Get 초기화된 전역 validator 인스턴스를 반환합니다.
// sync.Once를 사용하여 초기화가 정확히 한 번만 실행되도록 보장합니다.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// korean tag를 필드명으로 사용하도록 설정
		// validator가 에러 메시지를 생성할 때 korean tag 값을 필드명으로 사용합니다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			koreanName := fld.Tag.Get("korean")
			if koreanName != "" {
				return koreanName
			}
			return fld.Name
		})

		// rank: 1~3자리 양의 정수 문자열 (예: "1", "42", "999")
		_ = validate.RegisterValidation("rank", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if !rankPattern.MatchString(s) {
				return false
			}
			n, err := strconv.Atoi(s)
			return err == nil && n > 0
		})

		// isodate: 시간 요소가 없는 ISO 8601 날짜 문자열 (예: "2026-09-01")
		_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(isoDateLayout, fl.Field().String())
			return err == nil
		})

		// httpurl: http 또는 https 스키마를 가진 절대 URL
		_ = validate.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			u, err := url.Parse(fl.Field().String())
			if err != nil {
				return false
			}
			return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		})
	})

	return validate
}

// Struct 구조체의 validation tag를 기반으로 검증을 수행합니다.
func Struct(s interface{}) error {
	return Get().Struct(s)
}

// FormatValidationError validator 에러를 사용자 친화적인 한글 메시지로 변환합니다.
// 여러 검증 에러가 있을 경우 첫 번째 에러만 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}

	return FormatFieldError(validationErrors[0])
}

// FormatFieldError 개별 필드 에러를 한글 메시지로 변환합니다.
func FormatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s은(는) 필수입니다", fieldName)
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("%s은(는) 최소 %s자 이상이어야 합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s은(는) 최소 %s 이상이어야 합니다", fieldName, fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("%s은(는) 최대 %s자 이하여야 합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s은(는) 최대 %s 이하여야 합니다", fieldName, fieldErr.Param())
	case "rank":
		return fmt.Sprintf("%s은(는) 최대 3자리의 양의 정수여야 합니다", fieldName)
	case "isodate":
		return fmt.Sprintf("%s은(는) 유효한 날짜(yyyy-mm-dd)여야 합니다", fieldName)
	case "httpurl":
		return fmt.Sprintf("%s은(는) http 또는 https로 시작하는 절대 URL이어야 합니다", fieldName)
	case "oneof":
		return fmt.Sprintf("%s은(는) 허용된 값(%s) 중 하나여야 합니다", fieldName, fieldErr.Param())
	default:
		return fmt.Sprintf("%s이(가) 유효하지 않습니다 (%s)", fieldName, fieldErr.Tag())
	}
}
