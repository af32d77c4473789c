package persistence

import (
	"time"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
)

// ===========================
// GORM Models
// ===========================

// ItemGORM 回收品項資料表模型（種子資料）
type ItemGORM struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Title string `gorm:"column:title;type:varchar(255);not null"`
	Image string `gorm:"column:image;type:varchar(255);not null"`
}

// TableName 指定資料表名稱
func (ItemGORM) TableName() string {
	return "items"
}

// PointGORM 收集據點資料表模型
//
// 資料庫約束：
// - id: 自增主鍵
// - (uf, city): 複合索引，支援 listPoints 查詢
type PointGORM struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Image     string    `gorm:"column:image;type:varchar(512);not null"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
	WhatsApp  string    `gorm:"column:whatsapp;type:varchar(32);not null"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	City      string    `gorm:"column:city;type:varchar(255);not null;index:idx_points_location,priority:2"`
	UF        string    `gorm:"column:uf;type:varchar(2);not null;index:idx_points_location,priority:1"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (PointGORM) TableName() string {
	return "points"
}

// PointItemGORM 據點與品項的多對多關聯
//
// 資料庫約束：
// - (point_id, item_id): 複合主鍵
// - point_id → points.id（ON DELETE CASCADE）
// - item_id → items.id
type PointItemGORM struct {
	PointID int64 `gorm:"column:point_id;primaryKey"`
	ItemID  int64 `gorm:"column:item_id;primaryKey;index"`

	Point PointGORM `gorm:"foreignKey:PointID;references:ID;constraint:OnDelete:CASCADE"`
	Item  ItemGORM  `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName 指定資料表名稱
func (PointItemGORM) TableName() string {
	return "point_items"
}

// ===========================
// Mapper Functions
// ===========================

// toPointGORM 將 Domain 模型轉換為 GORM 模型（不含 ID，由資料庫分配）
func toPointGORM(p *point.Point) *PointGORM {
	return &PointGORM{
		Image:     p.Image(),
		Name:      p.Name(),
		Email:     p.Email(),
		WhatsApp:  p.WhatsApp(),
		Latitude:  p.Coordinates().Latitude(),
		Longitude: p.Coordinates().Longitude(),
		City:      p.City(),
		UF:        p.UF().String(),
		CreatedAt: p.CreatedAt(),
	}
}

// toPointItemRows 產生 point_items 插入列
func toPointItemRows(pointID int64, items point.ItemSet) []PointItemGORM {
	rows := make([]PointItemGORM, 0, items.Len())
	for _, itemID := range items.Int64s() {
		rows = append(rows, PointItemGORM{PointID: pointID, ItemID: itemID})
	}
	return rows
}

// toDomain 將 GORM 模型轉換為 Domain 模型
//
// 轉換邏輯：
// - ID: int64 → PointID 值對象
// - Latitude/Longitude → Coordinates 值對象
// - UF: 字串 → UF 值對象
func (m *PointGORM) toDomain(items point.ItemSet) (*point.Point, error) {
	id, err := point.PointIDFromInt64(m.ID)
	if err != nil {
		return nil, err
	}

	coords, err := point.NewCoordinates(m.Latitude, m.Longitude)
	if err != nil {
		return nil, err
	}

	uf, err := point.NewUF(m.UF)
	if err != nil {
		return nil, err
	}

	return point.ReconstructPoint(
		id,
		m.Name,
		m.Email,
		m.WhatsApp,
		m.Image,
		coords,
		m.City,
		uf,
		items,
		m.CreatedAt,
	), nil
}

// toDomain 將品項 GORM 模型轉換為 Domain 模型
func (m *ItemGORM) toDomain() (*point.Item, error) {
	id, err := point.ItemIDFromInt64(m.ID)
	if err != nil {
		return nil, err
	}
	return point.ReconstructItem(id, m.Title, m.Image), nil
}
