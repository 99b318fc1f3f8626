package handler

import (
	"net/http"

	"github.com/darkkaiser/catalog-server/internal/service/api/constants"
	"github.com/darkkaiser/catalog-server/internal/service/api/httputil"
	v1response "github.com/darkkaiser/catalog-server/internal/service/api/v1/model/response"
	"github.com/darkkaiser/catalog-server/internal/service/catalog"
	"github.com/darkkaiser/catalog-server/internal/service/catalog/form"
	applog "github.com/darkkaiser/catalog-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// ListProductsHandler 상품 목록을 조회합니다.
//
// 쿼리 파라미터:
//   - filter: visible(노출 상품), hidden(숨김 상품), all(전체, 기본값)
//
// 노출 상품은 진열 순번 오름차순으로 정렬되며, all의 경우 노출 상품 뒤에
// 숨김 상품이 이어집니다.
func (h *Handler) ListProductsHandler(c echo.Context) error {
	filter := catalog.Filter(c.QueryParam(constants.QueryParamFilter))

	products, err := h.directory.Products(filter)
	if err != nil {
		return httputil.FromError(err)
	}

	nextRank, err := h.directory.NextRank()
	if err != nil {
		return httputil.FromError(err)
	}

	return httputil.SuccessWithData(c, http.StatusOK, v1response.ProductList{
		Products:         products,
		TotalCount:       len(products),
		NextOrderSellout: nextRank,
	})
}

// AddProductHandler 새 상품을 등록합니다.
//
// 요청 본문의 모든 필드는 제출된 그대로의 문자열이며, 검증 실패 시
// 필드별 오류 메시지가 포함된 400 응답을 반환합니다.
// 진열 순번이 이미 사용중인 경우 409 응답을 반환합니다.
func (h *Handler) AddProductHandler(c echo.Context) error {
	productForm := new(form.ProductForm)
	if err := c.Bind(productForm); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	product, err := h.directory.Add(c.Request().Context(), productForm)
	if err != nil {
		return httputil.FromError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"product_id":    product.ID,
		"order_sellout": product.Rank(),
	}).Info("상품 등록됨")

	return httputil.SuccessWithData(c, http.StatusCreated, product)
}

// EditProductHandler 기존 상품의 내용을 수정합니다.
//
// 진열 순번을 다른 상품이 사용중인 순번으로 변경하려는 경우 409 응답을 반환하며,
// 저장소에는 어떠한 기록도 하지 않습니다.
func (h *Handler) EditProductHandler(c echo.Context) error {
	id := c.Param(constants.PathParamProductID)
	if id == "" {
		return httputil.NewBadRequestError(constants.ErrMsgProductIDRequired)
	}

	productForm := new(form.ProductForm)
	if err := c.Bind(productForm); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	product, err := h.directory.Edit(c.Request().Context(), id, productForm)
	if err != nil {
		return httputil.FromError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"product_id":    product.ID,
		"order_sellout": product.Rank(),
	}).Info("상품 수정됨")

	return httputil.SuccessWithData(c, http.StatusOK, product)
}

// DeleteProductHandler 상품을 삭제합니다.
//
// 노출 상품을 삭제하면 남은 노출 상품의 진열 순번이 1부터 빈틈없이
// 다시 매겨집니다.
func (h *Handler) DeleteProductHandler(c echo.Context) error {
	id := c.Param(constants.PathParamProductID)
	if id == "" {
		return httputil.NewBadRequestError(constants.ErrMsgProductIDRequired)
	}

	if err := h.directory.Delete(c.Request().Context(), id); err != nil {
		return httputil.FromError(err)
	}

	h.log(c).WithField("product_id", id).Info("상품 삭제됨")

	return httputil.Success(c)
}

// HideProductHandler 노출중인 상품을 숨김 처리합니다.
//
// 숨김 처리된 상품은 진열 순번을 잃으며, 남은 노출 상품의 진열 순번이
// 다시 매겨집니다. 이미 숨겨진 상품에 대해서는 400 응답을 반환합니다.
func (h *Handler) HideProductHandler(c echo.Context) error {
	id := c.Param(constants.PathParamProductID)
	if id == "" {
		return httputil.NewBadRequestError(constants.ErrMsgProductIDRequired)
	}

	if err := h.directory.Hide(c.Request().Context(), id); err != nil {
		return httputil.FromError(err)
	}

	h.log(c).WithField("product_id", id).Info("상품 숨김 처리됨")

	return httputil.Success(c)
}

// UnhideProductHandler 숨겨진 상품을 다시 노출 처리합니다.
//
// 노출 처리된 상품은 현재 노출 상품 목록의 맨 끝 진열 순번을 부여받습니다.
// 이미 노출중인 상품에 대해서는 400 응답을 반환합니다.
func (h *Handler) UnhideProductHandler(c echo.Context) error {
	id := c.Param(constants.PathParamProductID)
	if id == "" {
		return httputil.NewBadRequestError(constants.ErrMsgProductIDRequired)
	}

	if err := h.directory.Unhide(c.Request().Context(), id); err != nil {
		return httputil.FromError(err)
	}

	h.log(c).WithField("product_id", id).Info("상품 노출 처리됨")

	return httputil.Success(c)
}

// MoveProductHandler 노출중인 상품을 다른 진열 순번으로 이동합니다.
//
// 이동 후 모든 노출 상품의 진열 순번은 1부터 빈틈없이 다시 매겨집니다.
// 현재 순번과 동일하거나 범위를 벗어난 순번으로의 이동은 400 응답을 반환합니다.
func (h *Handler) MoveProductHandler(c echo.Context) error {
	id := c.Param(constants.PathParamProductID)
	if id == "" {
		return httputil.NewBadRequestError(constants.ErrMsgProductIDRequired)
	}

	moveForm := new(form.MoveProductForm)
	if err := c.Bind(moveForm); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	newRank, err := moveForm.Validate()
	if err != nil {
		return httputil.FromError(err)
	}

	if err := h.directory.Move(c.Request().Context(), id, newRank); err != nil {
		return httputil.FromError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"product_id":        id,
		"new_order_sellout": newRank,
	}).Info("상품 진열 순번 이동됨")

	return httputil.Success(c)
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint": c.Path(),
	})
}
