package persistence

import (
	"errors"
	"fmt"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// PointRepositoryImpl
// ===========================

// PointRepositoryImpl 收集據點倉儲實現（GORM）
//
// - 實作 point.PointRepository 接口
// - 處理 Domain 與 GORM 模型轉換
// - 將 GORM 錯誤轉換為 Domain 錯誤
type PointRepositoryImpl struct {
	db *gorm.DB
}

// NewPointRepository 創建新的據點倉儲實例
func NewPointRepository(db *gorm.DB) point.PointRepository {
	return &PointRepositoryImpl{db: db}
}

// Save 插入據點及其品項關聯
//
// 實作邏輯：
// 1. 插入 points 列，取得自增 ID
// 2. 插入每個品項一列 point_items
// 3. 回寫 ID 到聚合（MarkPersisted）
//
// 兩次寫入的原子性由調用者的事務保證；任一步失敗都返回錯誤，由事務回滾
func (r *PointRepositoryImpl) Save(tx shared.TransactionContext, p *point.Point) error {
	db := resolveDB(r.db, tx)

	model := toPointGORM(p)
	if err := db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert point: %w", err)
	}

	rows := toPointItemRows(model.ID, p.Items())
	if len(rows) > 0 {
		if err := db.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert point items: %w", err)
		}
	}

	id, err := point.PointIDFromInt64(model.ID)
	if err != nil {
		return fmt.Errorf("database returned invalid point id: %w", err)
	}
	p.MarkPersisted(id)

	return nil
}

// FindByID 根據 ID 查找據點
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → point.ErrPointNotFound
// - 其他資料庫錯誤 → 包裝後返回
func (r *PointRepositoryImpl) FindByID(tx shared.TransactionContext, id point.PointID) (*point.Point, error) {
	db := resolveDB(r.db, tx)

	var model PointGORM
	if err := db.Where("id = ?", id.Int64()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, point.ErrPointNotFound.WithContext("point_id", id.String())
		}
		return nil, fmt.Errorf("failed to get point: %w", err)
	}

	var itemIDs []int64
	if err := db.Model(&PointItemGORM{}).
		Where("point_id = ?", model.ID).
		Order("item_id").
		Pluck("item_id", &itemIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to get point items: %w", err)
	}

	items, err := point.ItemSetFromInt64s(itemIDs)
	if err != nil {
		return nil, err
	}

	return model.toDomain(items)
}

// FindByLocationAndItems 查詢位於 city+uf 且至少接受一個指定品項的據點
//
// 以子查詢篩選 point_id，結果天然去重；列表結果不載入品項集合
func (r *PointRepositoryImpl) FindByLocationAndItems(
	tx shared.TransactionContext,
	city string,
	uf point.UF,
	items point.ItemSet,
) ([]*point.Point, error) {
	if items.IsEmpty() {
		return []*point.Point{}, nil
	}

	db := resolveDB(r.db, tx)

	matching := db.Model(&PointItemGORM{}).
		Select("point_id").
		Where("item_id IN ?", items.Int64s())

	var models []PointGORM
	if err := db.Where("city = ? AND uf = ?", city, uf.String()).
		Where("id IN (?)", matching).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}

	points := make([]*point.Point, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain(point.NewItemSet(nil))
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, nil
}
