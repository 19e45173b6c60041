package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"error"`             // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 依錯誤代碼比對，讓帶有原始錯誤的副本仍可與預定義錯誤比對
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Wrap 以相同代碼與訊息包裝原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// WithMessage 以相同代碼建立不同訊息的錯誤
func (e *CustomError) WithMessage(message string) *CustomError {
	return &CustomError{Code: e.Code, Message: message, Status: e.Status, Err: e.Err}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ToErrorResponse 將錯誤轉為 HTTP 狀態與響應內容
func ToErrorResponse(err error) (int, ErrorResponse) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status, ErrorResponse{Code: ce.Code, Message: ce.Message}
	}
	if IsValidationError(err) {
		return http.StatusBadRequest, ErrorResponse{Code: ErrCodeInvalidRequest, Message: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Code: ErrCodeInternalError, Message: ErrInternalError.Message}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"      // 401
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE" // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, nil)
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "Authentication required", http.StatusUnauthorized, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "Duplicate request in progress", http.StatusConflict, nil)
	ErrPayloadTooLarge = NewError(ErrCodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "Service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "Gateway timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrNoImage            = NewError("NO_IMAGE", "No image file provided", http.StatusBadRequest, nil)
	ErrNoImageSelected    = NewError("NO_IMAGE_SELECTED", "No image selected", http.StatusBadRequest, nil)
	ErrInvalidImageFormat = NewError("INVALID_IMAGE_FORMAT", "Unable to decode image", http.StatusBadRequest, nil)
	ErrInvalidImageSize   = NewError("INVALID_IMAGE_SIZE", "Image too large", http.StatusBadRequest, nil)
	ErrInvalidImageType   = NewError("INVALID_IMAGE_TYPE", "Invalid file type. Allowed: png, jpg, jpeg, gif, bmp", http.StatusBadRequest, nil)
	ErrDetectionFailed    = NewError("DETECTION_FAILED", "Ingredient detection failed", http.StatusBadGateway, nil)
	ErrStorageUnavailable = NewError("STORAGE_UNAVAILABLE", "Storage unavailable", http.StatusServiceUnavailable, nil)
)
