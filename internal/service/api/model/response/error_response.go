package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 401, 500)
	ResultCode int `json:"result_code"`

	// Message 에러 메시지
	Message string `json:"message"`

	// FieldErrors 입력값 검증 실패 시 필드별 오류 메시지 (없으면 생략)
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}
