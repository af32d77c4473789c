package point

import (
	"strings"
	"time"

	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
)

// DefaultImageURL 未提供圖片時使用的據點佔位圖
const DefaultImageURL = "https://images.unsplash.com/photo-1550989460-0adf9ea622e2?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=400&q=60"

// ===========================
// Point 聚合根
// ===========================

// Point 收集據點聚合根
//
// 業務不變條件：
// - 至少接受一個品項（items 非空）
// - name、city 非空
// - 座標在有效範圍內（由 Coordinates 保證）
// - 建立後不可變（本系統範圍內沒有更新操作）
type Point struct {
	// 聚合根識別符（Save 前為零值）
	id PointID

	// 聯絡資訊
	name     string
	email    string
	whatsapp string
	image    string

	// 位置
	coordinates Coordinates
	city        string
	uf          UF

	// 接受的品項
	items ItemSet

	createdAt time.Time

	// 待發布的領域事件
	events []shared.DomainEvent
}

// NewPointParams 建立據點所需的參數
type NewPointParams struct {
	Name        string
	Email       string
	WhatsApp    string
	Image       string
	Coordinates Coordinates
	City        string
	UF          UF
	Items       ItemSet
}

// ===========================
// 建構函數（工廠方法）
// ===========================

// NewPoint 創建新的收集據點（尚未持久化）
//
// 錯誤：
//   - ErrInvalidName: name 為空白
//   - ErrInvalidLocation: city 為空白或 uf 為零值
//   - ErrEmptyItems: 品項集合為空
func NewPoint(p NewPointParams) (*Point, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	city := strings.TrimSpace(p.City)
	if city == "" {
		return nil, ErrInvalidLocation.WithContext("city", p.City)
	}
	if p.UF.IsZero() {
		return nil, ErrInvalidUF
	}

	if p.Items.IsEmpty() {
		return nil, ErrEmptyItems
	}

	image := strings.TrimSpace(p.Image)
	if image == "" {
		image = DefaultImageURL
	}

	return &Point{
		name:        name,
		email:       strings.TrimSpace(p.Email),
		whatsapp:    strings.TrimSpace(p.WhatsApp),
		image:       image,
		coordinates: p.Coordinates,
		city:        city,
		uf:          p.UF,
		items:       p.Items,
		createdAt:   time.Now(),
		events:      make([]shared.DomainEvent, 0),
	}, nil
}

// ReconstructPoint 從持久化資料重建聚合（不發布事件、不驗證品項非空）
//
// 使用場景：Repository 讀取資料；列表查詢不載入品項，items 可為空
func ReconstructPoint(
	id PointID,
	name, email, whatsapp, image string,
	coordinates Coordinates,
	city string,
	uf UF,
	items ItemSet,
	createdAt time.Time,
) *Point {
	return &Point{
		id:          id,
		name:        name,
		email:       email,
		whatsapp:    whatsapp,
		image:       image,
		coordinates: coordinates,
		city:        city,
		uf:          uf,
		items:       items,
		createdAt:   createdAt,
		events:      make([]shared.DomainEvent, 0),
	}
}

// ===========================
// 持久化回呼
// ===========================

// MarkPersisted 由 Repository 在插入成功後調用，寫入資料庫分配的 ID
//
// 同時記錄 PointRegistered 事件；重複調用不會重複記錄
func (p *Point) MarkPersisted(id PointID) {
	if !p.id.IsEmpty() {
		return
	}
	p.id = id
	p.events = append(p.events, NewPointRegisteredEvent(p))
}

// PullEvents 取出並清空待發布事件
func (p *Point) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 查詢方法（Getters）
// ===========================

func (p *Point) ID() PointID { return p.id }
func (p *Point) Name() string { return p.name }
func (p *Point) Email() string { return p.email }
func (p *Point) WhatsApp() string { return p.whatsapp }
func (p *Point) Image() string { return p.image }
func (p *Point) Coordinates() Coordinates { return p.coordinates }
func (p *Point) City() string { return p.city }
func (p *Point) UF() UF { return p.uf }
func (p *Point) Items() ItemSet { return p.items }
func (p *Point) CreatedAt() time.Time { return p.createdAt }

// IsLocatedIn 是否位於指定城市與州（城市名稱區分大小寫，與儲存值完全相同）
func (p *Point) IsLocatedIn(city string, uf UF) bool {
	return p.city == city && p.uf == uf
}
