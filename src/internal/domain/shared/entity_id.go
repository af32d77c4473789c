package shared

import (
	"strconv"
	"strings"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 是一個泛型實體 ID 值對象（資料庫自增主鍵）
//
// 泛型參數 T：
// - 用於類型區分的標記類型（marker type）
// - EntityID[PointMarker] 和 EntityID[ItemMarker] 是不同類型，不能混用
//
// 不變條件：
// - 有效 ID 永遠 > 0
// - 零值表示「尚未持久化」（IsEmpty 返回 true）
//
// 使用範例：
//
//	type PointMarker struct{}
//	type PointID = shared.EntityID[PointMarker]
//
//	id, err := shared.EntityIDFromString[PointMarker]("42", ErrInvalidPointID)
type EntityID[T any] struct {
	value int64
}

// EntityIDFromInt64 從整數建立實體 ID
//
// 參數：
//
//	v - 主鍵值（必須 > 0）
//	errTemplate - 無效時返回的錯誤類型（由調用者提供）
func EntityIDFromInt64[T any](v int64, errTemplate error) (EntityID[T], error) {
	if v <= 0 {
		return EntityID[T]{}, withContext(errTemplate, "input", strconv.FormatInt(v, 10))
	}
	return EntityID[T]{value: v}, nil
}

// EntityIDFromString 從字串解析實體 ID
//
// 參數：
//
//	s - 十進位正整數字串（允許前後空白）
//	errTemplate - 解析失敗時返回的錯誤類型
//
// 不同實體的 ID 返回不同的錯誤（ErrInvalidPointID vs ErrInvalidItemID），
// 錯誤定義在各自的 bounded context 中
func EntityIDFromString[T any](s string, errTemplate error) (EntityID[T], error) {
	trimmed := strings.TrimSpace(s)
	v, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return EntityID[T]{}, withContext(errTemplate, "input", s, "parse_error", err.Error())
	}
	if v <= 0 {
		return EntityID[T]{}, withContext(errTemplate, "input", s)
	}
	return EntityID[T]{value: v}, nil
}

// MustEntityID 從整數建立實體 ID，無效時 panic
//
// 僅用於種子資料與測試
func MustEntityID[T any](v int64) EntityID[T] {
	if v <= 0 {
		panic("entity id must be positive")
	}
	return EntityID[T]{value: v}
}

// Int64 返回原始主鍵值
func (e EntityID[T]) Int64() int64 {
	return e.value
}

// String 轉換為十進位字串表示
func (e EntityID[T]) String() string {
	return strconv.FormatInt(e.value, 10)
}

// Equals 比較兩個 EntityID 是否相等（只能比較相同類型）
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值，尚未持久化）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == 0
}

// withContext 如果錯誤類型支持 WithContext（如 DomainError），附加上下文
func withContext(errTemplate error, keyValues ...interface{}) error {
	if domainErr, ok := errTemplate.(interface {
		WithContext(keyValues ...interface{}) error
	}); ok {
		return domainErr.WithContext(keyValues...)
	}
	return errTemplate
}
