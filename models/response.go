package models

// APIResponse 표준 API 응답 구조
type APIResponse struct {
	Status  string      `json:"status"` // success, error
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"` // 에러 종류 (not_found, quota_exceeded ...)
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PaginatedResponse 페이징 응답
type PaginatedResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    Pagination  `json:"meta"`
}

// Pagination 페이징 정보
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// NewPagination 전체 건수로 페이지 수 계산
func NewPagination(page, pageSize, total int) Pagination {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, TotalPages: pages, TotalCount: total}
}

// 에러 코드
const (
	CodeBadRequest    = "bad_request"
	CodeUnauthorized  = "unauthorized"
	CodeNotFound      = "not_found"
	CodeInvalid       = "invalid"
	CodeDeviceRevoked = "device_revoked"
	CodeQuotaExceeded = "quota_exceeded"
	CodeRateLimited   = "rate_limited"
	CodeInvalidToken  = "invalid_token"
	CodeForbidden     = "forbidden"
	CodeConflict      = "conflict"
	CodeUnavailable   = "unavailable"
	CodeInternal      = "internal"
)

// SuccessResponse 성공 응답 생성
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// ErrorResponse 에러 응답 생성
func ErrorResponse(message string, err error) APIResponse {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return APIResponse{
		Status:  "error",
		Message: message,
		Error:   errMsg,
	}
}

// CodedErrorResponse 에러 코드가 포함된 에러 응답 생성
func CodedErrorResponse(code, message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  "error",
		Message: message,
		Code:    code,
		Data:    data,
	}
}
