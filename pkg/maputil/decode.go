// Package maputil 맵(Map) 데이터 처리 및 구조체 변환을 위한 유틸리티 기능을 제공합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode 입력된 맵(Map)이나 인터페이스 데이터를 지정된 제네릭 타입 T의 구조체로 변환하여 반환합니다.
//
// 내부적으로 mapstructure 라이브러리를 활용하며, 다음의 기본 설정이 적용됩니다:
//   - 유연한 타입 변환 (WeaklyTypedInput): "123" -> 123 (int) 등 타입을 자동으로 보정합니다.
//   - 태그 지원: 구조체의 json 태그를 기준으로 필드를 매핑합니다.
//   - time.Duration 문자열("30s" 등) 자동 변환 훅이 내장되어 있습니다.
//
// 구조체에 정의되지 않은 필드가 입력 데이터에 포함되어 있어도 에러 없이 무시됩니다.
func Decode[T any](input any) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo 입력된 데이터를 대상 구조체 포인터(output)에 디코딩하여 값을 채웁니다.
// output 인자는 반드시 nil이 아닌 포인터여야 합니다.
func DecodeTo(input any, output any) error {
	if output == nil {
		return errors.New("출력 대상(output)은 nil일 수 없습니다")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("디코더 생성 실패: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("맵 데이터 디코딩 실패: %w", err)
	}
	return nil
}
