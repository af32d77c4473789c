package point

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
)

// ===========================
// 輸入驗證
// ===========================

// ValidationError 欄位驗證失敗
//
// - Fields: 欄位名稱（JSON 名稱）→ 失敗的規則（如 required、email）
// - errors.Is(err, point.ErrValidationFailed) 為 true
type ValidationError struct {
	Fields map[string]string
}

// Error 實現 error 接口
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", point.ErrValidationFailed.Error(), strings.Join(parts, ", "))
}

// Unwrap 讓 errors.Is 以錯誤代碼比對 point.ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return point.ErrValidationFailed
}

// newValidator 建立以 JSON 欄位名稱回報錯誤的驗證器
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct 執行結構驗證並轉換為 ValidationError
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		// items[0] 等陣列元素錯誤歸到 items 欄位
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if _, exists := fields[name]; !exists {
			fields[name] = fe.Tag()
		}
	}
	return &ValidationError{Fields: fields}
}
