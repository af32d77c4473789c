package point

import (
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
)

// ===========================
// 實體 ID 類型定義
// ===========================

// PointMarker 是 PointID 的標記類型
type PointMarker struct{}

// PointID 收集據點的唯一標識符（資料庫自增主鍵）
//
// 零值表示尚未持久化，Repository.Save 後由資料庫分配
type PointID = shared.EntityID[PointMarker]

// PointIDFromString 從字串解析據點 ID
//
// 使用場景：解析 HTTP 路徑參數 /points/{id}
func PointIDFromString(s string) (PointID, error) {
	return shared.EntityIDFromString[PointMarker](s, ErrInvalidPointID)
}

// PointIDFromInt64 從資料庫主鍵建立據點 ID
func PointIDFromInt64(v int64) (PointID, error) {
	return shared.EntityIDFromInt64[PointMarker](v, ErrInvalidPointID)
}

// ItemMarker 是 ItemID 的標記類型
type ItemMarker struct{}

// ItemID 回收品項的唯一標識符
type ItemID = shared.EntityID[ItemMarker]

// ItemIDFromInt64 從整數建立品項 ID
//
// 使用場景：POST /points 的 items 陣列
func ItemIDFromInt64(v int64) (ItemID, error) {
	return shared.EntityIDFromInt64[ItemMarker](v, ErrInvalidItemID)
}

// ItemIDFromString 從字串解析品項 ID
func ItemIDFromString(s string) (ItemID, error) {
	return shared.EntityIDFromString[ItemMarker](s, ErrInvalidItemID)
}

// MustItemID 建立品項 ID，v <= 0 時 panic（種子資料與測試用）
func MustItemID(v int64) ItemID {
	return shared.MustEntityID[ItemMarker](v)
}

// MustPointID 建立據點 ID，v <= 0 時 panic（測試用）
func MustPointID(v int64) PointID {
	return shared.MustEntityID[PointMarker](v)
}
