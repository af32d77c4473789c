package point

import "fmt"

// ===========================
// 錯誤代碼定義
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// 錯誤代碼常量
const (
	// 據點相關
	ErrCodePointNotFound   ErrorCode = "POINT_NOT_FOUND"
	ErrCodeInvalidPointID  ErrorCode = "POINT_ID_INVALID"
	ErrCodeEmptyItems      ErrorCode = "POINT_ITEMS_EMPTY"
	ErrCodeInvalidName     ErrorCode = "POINT_NAME_INVALID"
	ErrCodeInvalidLocation ErrorCode = "POINT_LOCATION_INVALID"

	// 品項相關
	ErrCodeItemNotFound      ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeInvalidItemID     ErrorCode = "ITEM_ID_INVALID"
	ErrCodeInvalidItemFilter ErrorCode = "ITEM_FILTER_INVALID"

	// 值對象相關
	ErrCodeInvalidCoordinates ErrorCode = "COORDINATES_INVALID"
	ErrCodeInvalidUF          ErrorCode = "UF_INVALID"

	// 輸入驗證
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// - Code 用於 HTTP 狀態碼映射
// - Message 可直接回傳給客戶端
// - Context 用於調試和日誌
// - 不可變：WithContext 返回新的實例
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}

	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（以錯誤代碼判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsNotFound 是否為「資源不存在」類錯誤
func (e *DomainError) IsNotFound() bool {
	return e.Code == ErrCodePointNotFound || e.Code == ErrCodeInvalidPointID
}

// ===========================
// 預定義錯誤
// ===========================

// 據點相關錯誤
var (
	ErrPointNotFound = &DomainError{
		Code:    ErrCodePointNotFound,
		Message: "Point not found.",
	}

	ErrInvalidPointID = &DomainError{
		Code:    ErrCodeInvalidPointID,
		Message: "Point not found.",
	}

	ErrEmptyItems = &DomainError{
		Code:    ErrCodeEmptyItems,
		Message: "A collection point must accept at least one item.",
	}

	ErrInvalidName = &DomainError{
		Code:    ErrCodeInvalidName,
		Message: "Name must not be empty.",
	}

	ErrInvalidLocation = &DomainError{
		Code:    ErrCodeInvalidLocation,
		Message: "City must not be empty.",
	}
)

// 品項相關錯誤
var (
	ErrItemNotFound = &DomainError{
		Code:    ErrCodeItemNotFound,
		Message: "One or more items do not exist.",
	}

	ErrInvalidItemID = &DomainError{
		Code:    ErrCodeInvalidItemID,
		Message: "Invalid item id.",
	}

	ErrInvalidItemFilter = &DomainError{
		Code:    ErrCodeInvalidItemFilter,
		Message: "Items filter must be a comma-separated list of ids.",
	}
)

// 值對象相關錯誤
var (
	ErrInvalidCoordinates = &DomainError{
		Code:    ErrCodeInvalidCoordinates,
		Message: "Latitude must be within [-90, 90] and longitude within [-180, 180].",
	}

	ErrInvalidUF = &DomainError{
		Code:    ErrCodeInvalidUF,
		Message: "UF must be a two-letter state code.",
	}
)

// 輸入驗證錯誤（欄位明細由 Application Layer 附加）
var ErrValidationFailed = &DomainError{
	Code:    ErrCodeValidationFailed,
	Message: "Validation failed.",
}
