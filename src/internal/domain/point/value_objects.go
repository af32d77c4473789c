package point

import (
	"strings"

	"github.com/shopspring/decimal"
)

// coordinatePrecision 座標保留的小數位數（約 0.1 公尺）
const coordinatePrecision = 6

// ===========================
// Coordinates 值對象
// ===========================

// Coordinates 地理座標值對象（WGS 84）
//
// 建構約束：
// - latitude ∈ [-90, 90]
// - longitude ∈ [-180, 180]
// - 兩者以十進位運算四捨五入到 6 位小數
type Coordinates struct {
	latitude  decimal.Decimal
	longitude decimal.Decimal
}

// NewCoordinates 建構函數（checked 版本）
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	lat := decimal.NewFromFloat(latitude).Round(coordinatePrecision)
	lng := decimal.NewFromFloat(longitude).Round(coordinatePrecision)

	if lat.LessThan(decimal.NewFromInt(-90)) || lat.GreaterThan(decimal.NewFromInt(90)) ||
		lng.LessThan(decimal.NewFromInt(-180)) || lng.GreaterThan(decimal.NewFromInt(180)) {
		return Coordinates{}, ErrInvalidCoordinates.WithContext(
			"latitude", lat.String(),
			"longitude", lng.String(),
		)
	}

	return Coordinates{latitude: lat, longitude: lng}, nil
}

// Latitude 緯度
func (c Coordinates) Latitude() float64 {
	return c.latitude.InexactFloat64()
}

// Longitude 經度
func (c Coordinates) Longitude() float64 {
	return c.longitude.InexactFloat64()
}

// Equals 比較兩個座標是否相等（以正規化後的十進位值比較）
func (c Coordinates) Equals(other Coordinates) bool {
	return c.latitude.Equal(other.latitude) && c.longitude.Equal(other.longitude)
}

// ===========================
// UF 值對象
// ===========================

// UF 巴西州代碼（例如 SP、RJ）
//
// 建構約束：恰好兩個 ASCII 字母，儲存為大寫
type UF struct {
	value string
}

// NewUF 建構函數
func NewUF(s string) (UF, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if len(v) != 2 || !isASCIILetter(v[0]) || !isASCIILetter(v[1]) {
		return UF{}, ErrInvalidUF.WithContext("uf", s)
	}
	return UF{value: v}, nil
}

// String 返回大寫州代碼
func (u UF) String() string {
	return u.value
}

// IsZero 是否為零值
func (u UF) IsZero() bool {
	return u.value == ""
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ===========================
// ItemSet 值對象
// ===========================

// ItemSet 去重後的品項 ID 集合（保留首次出現的順序）
type ItemSet struct {
	ids []ItemID
}

// NewItemSet 從 ID 列表建立集合，重複的 ID 只保留一次
func NewItemSet(ids []ItemID) ItemSet {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]ItemID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id.Int64()]; ok {
			continue
		}
		seen[id.Int64()] = struct{}{}
		out = append(out, id)
	}
	return ItemSet{ids: out}
}

// ItemSetFromInt64s 從原始整數列表建立集合
//
// 任何一個 ID <= 0 都返回 ErrInvalidItemID
func ItemSetFromInt64s(raw []int64) (ItemSet, error) {
	ids := make([]ItemID, 0, len(raw))
	for _, v := range raw {
		id, err := ItemIDFromInt64(v)
		if err != nil {
			return ItemSet{}, err
		}
		ids = append(ids, id)
	}
	return NewItemSet(ids), nil
}

// ParseItemFilter 解析查詢參數 items=1,2,3
//
// 規則：
// - 空字串返回空集合
// - 空白與空 token 被忽略（"1,,2 " → {1, 2}）
// - 任一 token 不是正整數返回 ErrInvalidItemFilter
func ParseItemFilter(raw string) (ItemSet, error) {
	var ids []ItemID
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := ItemIDFromString(token)
		if err != nil {
			return ItemSet{}, ErrInvalidItemFilter.WithContext("items", raw, "token", token)
		}
		ids = append(ids, id)
	}
	return NewItemSet(ids), nil
}

// IDs 返回集合內容的副本
func (s ItemSet) IDs() []ItemID {
	out := make([]ItemID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Int64s 返回原始整數列表（供 Infrastructure Layer 組裝 SQL）
func (s ItemSet) Int64s() []int64 {
	out := make([]int64, len(s.ids))
	for i, id := range s.ids {
		out[i] = id.Int64()
	}
	return out
}

// Len 集合大小
func (s ItemSet) Len() int {
	return len(s.ids)
}

// IsEmpty 是否為空集合
func (s ItemSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// Contains 是否包含指定品項
func (s ItemSet) Contains(id ItemID) bool {
	for _, v := range s.ids {
		if v.Equals(id) {
			return true
		}
	}
	return false
}

// Overlaps 兩個集合是否至少有一個共同元素
func (s ItemSet) Overlaps(other ItemSet) bool {
	for _, v := range s.ids {
		if other.Contains(v) {
			return true
		}
	}
	return false
}
