package wizard

import "context"

// ===========================
// 外部依賴介面（由 Infrastructure Layer 實作）
// ===========================

// Position 地理座標
type Position struct {
	Latitude  float64
	Longitude float64
}

// CatalogItem 可選擇的回收品項
type CatalogItem struct {
	ID       int64
	Title    string
	ImageURL string
}

// Submission 送交註冊 API 的資料
type Submission struct {
	Name      string
	Email     string
	WhatsApp  string
	UF        string
	City      string
	Latitude  float64
	Longitude float64
	Items     []int64
}

// RegisteredPoint 註冊成功後 API 返回的據點
type RegisteredPoint struct {
	ID    int64
	Name  string
	City  string
	UF    string
	Items []int64
}

// ItemCatalog 品項目錄來源（GET /items）
type ItemCatalog interface {
	ListItems(ctx context.Context) ([]CatalogItem, error)
}

// GeoReference 州與城市參考資料來源（IBGE）
type GeoReference interface {
	ListStates(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, uf string) ([]string, error)
}

// Locator 取得目前位置
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// PointRegistrar 據點註冊 API（POST /points）
type PointRegistrar interface {
	RegisterPoint(ctx context.Context, s Submission) (*RegisteredPoint, error)
}
