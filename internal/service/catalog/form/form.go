// Package form 상품 등록/수정/이동 요청의 입력값 검증과 타입 변환을 담당합니다.
//
// 모든 입력 필드는 제출된 그대로의 문자열이며, 검증을 통과하면 타입이 변환된
// 도메인 레코드를, 실패하면 필드별 오류 메시지(FieldErrors)를 반환합니다.
package form

import (
	"strconv"
	"strings"

	appvalidator "github.com/darkkaiser/catalog-server/internal/pkg/validator"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/model"
	validator "github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
)

// ProductForm 상품 등록/수정 화면에서 제출되는 입력값입니다.
type ProductForm struct {
	OrderSellout string `json:"orderSellout" validate:"required,rank" korean:"진열 순번"`

	Category   string `json:"category" validate:"required" korean:"카테고리"`
	Title      string `json:"title" validate:"required,min=5,max=50" korean:"상품명"`
	OfferState string `json:"offerState" validate:"required" korean:"판매 상태"`

	URLProduct string `json:"urlProduct" validate:"required,httpurl" korean:"상품 URL"`
	URLImage   string `json:"urlImage" validate:"required,httpurl" korean:"이미지 URL"`

	StartDate string `json:"startDate" validate:"required,isodate" korean:"판매 시작일"`
	EndDate   string `json:"endDate" validate:"required,isodate" korean:"판매 종료일"`

	IsProductHidden bool `json:"isProductHidden"`
}

// MoveProductForm 상품 진열 순번 이동 요청의 입력값입니다.
type MoveProductForm struct {
	NewOrderSellout string `json:"newOrderSellout" validate:"required,rank" korean:"새 진열 순번"`
}

// FieldErrors 필드명(snake_case)을 키로 하는 검증 오류 메시지 목록입니다.
// error 인터페이스를 구현하므로 일반 에러처럼 전파할 수 있습니다.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "입력값이 유효하지 않습니다"
	}

	messages := make([]string, 0, len(e))
	for field, message := range e {
		messages = append(messages, field+": "+message)
	}
	return "입력값이 유효하지 않습니다 (" + strings.Join(messages, ", ") + ")"
}

// Validate 입력값을 검증하고, 통과하면 타입이 변환된 상품 레코드를 반환합니다.
//
// 문자열 필드는 앞뒤 공백이 제거되며, 진열 순번은 정수로 변환되어 설정됩니다.
// 검증 실패 시 FieldErrors를 반환합니다.
func (f *ProductForm) Validate() (*model.Product, error) {
	normalized := ProductForm{
		OrderSellout:    strings.TrimSpace(f.OrderSellout),
		Category:        strings.TrimSpace(f.Category),
		Title:           strings.TrimSpace(f.Title),
		OfferState:      strings.TrimSpace(f.OfferState),
		URLProduct:      strings.TrimSpace(f.URLProduct),
		URLImage:        strings.TrimSpace(f.URLImage),
		StartDate:       strings.TrimSpace(f.StartDate),
		EndDate:         strings.TrimSpace(f.EndDate),
		IsProductHidden: f.IsProductHidden,
	}

	if err := appvalidator.Struct(&normalized); err != nil {
		return nil, toFieldErrors(err)
	}

	// rank 태그 검증을 통과했으므로 변환은 항상 성공한다.
	rank, _ := strconv.Atoi(normalized.OrderSellout)

	product := &model.Product{
		Category:        normalized.Category,
		Title:           normalized.Title,
		OfferState:      normalized.OfferState,
		URLProduct:      normalized.URLProduct,
		URLImage:        normalized.URLImage,
		StartDate:       normalized.StartDate,
		EndDate:         normalized.EndDate,
		IsProductHidden: normalized.IsProductHidden,
	}
	product.SetRank(rank)

	return product, nil
}

// Validate 입력값을 검증하고, 통과하면 변환된 새 진열 순번을 반환합니다.
func (f *MoveProductForm) Validate() (int, error) {
	normalized := MoveProductForm{
		NewOrderSellout: strings.TrimSpace(f.NewOrderSellout),
	}

	if err := appvalidator.Struct(&normalized); err != nil {
		return 0, toFieldErrors(err)
	}

	newRank, _ := strconv.Atoi(normalized.NewOrderSellout)
	return newRank, nil
}

// toFieldErrors validator의 검증 오류를 필드별 오류 메시지로 변환합니다.
func toFieldErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}

	fieldErrors := make(FieldErrors, len(validationErrors))
	for _, fieldError := range validationErrors {
		key := strcase.ToSnake(fieldError.StructField())
		if _, exists := fieldErrors[key]; !exists {
			fieldErrors[key] = appvalidator.FormatFieldError(fieldError)
		}
	}
	return fieldErrors
}
