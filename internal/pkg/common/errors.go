package common

import (
	"errors"
	"net/http"
)

// Kind 錯誤種類
type Kind string

// 封閉的錯誤種類列舉
const (
	KindValidation  Kind = "VALIDATION"  // 輸入驗證失敗，不會發出任何網路請求
	KindTransport   Kind = "TRANSPORT"   // 遠端服務無法連線或回傳錯誤狀態
	KindDecode      Kind = "DECODE"      // 遠端回應無法解析或缺少必要欄位
	KindPersistence Kind = "PERSISTENCE" // 購物清單檔案寫入失敗
	KindInternal    Kind = "INTERNAL"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Kind    Kind   // 錯誤種類
	Message string // 錯誤信息
	Err     error  // 原始錯誤
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 返回原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Status 對應的 HTTP 狀態碼
func (e *CustomError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindTransport, KindDecode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewError 創建新的自定義錯誤
func NewError(kind Kind, message string, err error) *CustomError {
	return &CustomError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return NewError(KindValidation, message, nil)
}

// NewTransportError 創建遠端請求錯誤
func NewTransportError(message string, err error) error {
	return NewError(KindTransport, message, err)
}

// NewDecodeError 創建回應解析錯誤
func NewDecodeError(message string, err error) error {
	return NewError(KindDecode, message, err)
}

// NewPersistenceError 創建檔案寫入錯誤
func NewPersistenceError(message string, err error) error {
	return NewError(KindPersistence, message, err)
}

// KindOf 取得錯誤種類，非自定義錯誤一律視為 KindInternal
func KindOf(err error) Kind {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// StatusOf 取得錯誤對應的 HTTP 狀態碼
func StatusOf(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Status()
	}
	return http.StatusInternalServerError
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429
	ErrCodeInternalError   = "INTERNAL_ERROR"    // 500
	ErrCodeBadGateway      = "BAD_GATEWAY"       // 502
	ErrCodeGatewayTimeout  = "GATEWAY_TIMEOUT"   // 504
)

// CodeOf 取得錯誤對應的錯誤代碼
func CodeOf(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return ErrCodeInvalidRequest
	case KindTransport, KindDecode:
		return ErrCodeBadGateway
	default:
		return ErrCodeInternalError
	}
}
