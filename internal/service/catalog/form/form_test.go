package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validProductForm 검증을 통과하는 기본 입력값을 생성합니다.
func validProductForm() ProductForm {
	return ProductForm{
		OrderSellout:    "3",
		Category:        "과일",
		Title:           "성주 꿀참외 1.5kg",
		OfferState:      "판매중",
		URLProduct:      "https://shop.example.com/products/1",
		URLImage:        "https://shop.example.com/images/1.jpg",
		StartDate:       "2026-09-01",
		EndDate:         "2026-09-30",
		IsProductHidden: false,
	}
}

func TestProductForm_Validate(t *testing.T) {
	t.Parallel()

	t.Run("ValidForm", func(t *testing.T) {
		t.Parallel()

		f := validProductForm()

		product, err := f.Validate()
		require.NoError(t, err)

		assert.Equal(t, 3, product.Rank())
		assert.Equal(t, "과일", product.Category)
		assert.Equal(t, "성주 꿀참외 1.5kg", product.Title)
		assert.Equal(t, "판매중", product.OfferState)
		assert.False(t, product.IsProductHidden)
		assert.Empty(t, product.ID)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		t.Parallel()

		f := validProductForm()
		f.Title = "  성주 꿀참외 1.5kg  "
		f.OrderSellout = " 7 "

		product, err := f.Validate()
		require.NoError(t, err)

		assert.Equal(t, "성주 꿀참외 1.5kg", product.Title)
		assert.Equal(t, 7, product.Rank())
	})

	t.Run("InvalidFields", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			modifier func(*ProductForm)
			errField string
		}{
			{"MissingRank", func(f *ProductForm) { f.OrderSellout = "" }, "order_sellout"},
			{"RankZero", func(f *ProductForm) { f.OrderSellout = "0" }, "order_sellout"},
			{"RankNegative", func(f *ProductForm) { f.OrderSellout = "-1" }, "order_sellout"},
			{"RankFourDigits", func(f *ProductForm) { f.OrderSellout = "1000" }, "order_sellout"},
			{"RankNotNumeric", func(f *ProductForm) { f.OrderSellout = "abc" }, "order_sellout"},
			{"MissingCategory", func(f *ProductForm) { f.Category = "" }, "category"},
			{"TitleTooShort", func(f *ProductForm) { f.Title = "참외" }, "title"},
			{"TitleTooLong", func(f *ProductForm) {
				long := ""
				for i := 0; i < 51; i++ {
					long += "가"
				}
				f.Title = long
			}, "title"},
			{"MissingOfferState", func(f *ProductForm) { f.OfferState = "" }, "offer_state"},
			{"ProductURLNotHTTP", func(f *ProductForm) { f.URLProduct = "ftp://shop.example.com/1" }, "url_product"},
			{"ImageURLMalformed", func(f *ProductForm) { f.URLImage = "not-a-url" }, "url_image"},
			{"StartDateMalformed", func(f *ProductForm) { f.StartDate = "2026/09/01" }, "start_date"},
			{"EndDateNotACalendarDate", func(f *ProductForm) { f.EndDate = "2026-02-30" }, "end_date"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				f := validProductForm()
				tt.modifier(&f)

				product, err := f.Validate()
				require.Error(t, err)
				assert.Nil(t, product)

				var fieldErrors FieldErrors
				require.ErrorAs(t, err, &fieldErrors)
				assert.Contains(t, fieldErrors, tt.errField)
			})
		}
	})

	t.Run("EndDateBeforeStartDateIsAllowed", func(t *testing.T) {
		t.Parallel()

		// 판매 종료일이 시작일보다 앞서는 입력은 거부하지 않는다.
		f := validProductForm()
		f.StartDate = "2026-09-30"
		f.EndDate = "2026-09-01"

		_, err := f.Validate()
		assert.NoError(t, err)
	})

	t.Run("MultipleInvalidFieldsAllReported", func(t *testing.T) {
		t.Parallel()

		f := validProductForm()
		f.OrderSellout = "abc"
		f.Title = "짧음"

		_, err := f.Validate()
		require.Error(t, err)

		var fieldErrors FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Contains(t, fieldErrors, "order_sellout")
		assert.Contains(t, fieldErrors, "title")
	})
}

func TestMoveProductForm_Validate(t *testing.T) {
	t.Parallel()

	t.Run("ValidRank", func(t *testing.T) {
		t.Parallel()

		f := MoveProductForm{NewOrderSellout: "12"}

		newRank, err := f.Validate()
		require.NoError(t, err)
		assert.Equal(t, 12, newRank)
	})

	t.Run("InvalidRank", func(t *testing.T) {
		t.Parallel()

		tests := []string{"", "0", "-3", "1234", "abc", "1.5"}

		for _, input := range tests {
			f := MoveProductForm{NewOrderSellout: input}

			_, err := f.Validate()
			require.Error(t, err, "input=%q", input)

			var fieldErrors FieldErrors
			require.ErrorAs(t, err, &fieldErrors)
			assert.Contains(t, fieldErrors, "new_order_sellout")
		}
	})
}

func TestFieldErrors_Error(t *testing.T) {
	t.Parallel()

	assert.Contains(t, FieldErrors{"title": "메시지"}.Error(), "title: 메시지")
	assert.Equal(t, "입력값이 유효하지 않습니다", FieldErrors{}.Error())
}
