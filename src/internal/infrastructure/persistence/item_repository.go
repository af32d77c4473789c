package persistence

import (
	"fmt"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ItemRepositoryImpl 回收品項倉儲實現（GORM，唯讀）
type ItemRepositoryImpl struct {
	db *gorm.DB
}

// NewItemRepository 創建新的品項倉儲實例
func NewItemRepository(db *gorm.DB) point.ItemRepository {
	return &ItemRepositoryImpl{db: db}
}

// FindAll 返回全部品項，依 ID 排序
func (r *ItemRepositoryImpl) FindAll(tx shared.TransactionContext) ([]*point.Item, error) {
	db := resolveDB(r.db, tx)

	var models []ItemGORM
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return itemsToDomain(models)
}

// FindByPointID 返回據點接受的品項
func (r *ItemRepositoryImpl) FindByPointID(tx shared.TransactionContext, id point.PointID) ([]*point.Item, error) {
	db := resolveDB(r.db, tx)

	var models []ItemGORM
	if err := db.Model(&ItemGORM{}).
		Joins("JOIN point_items ON point_items.item_id = items.id").
		Where("point_items.point_id = ?", id.Int64()).
		Order("items.id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for point: %w", err)
	}

	return itemsToDomain(models)
}

// EnsureExist 確認集合中所有品項都存在
//
// 錯誤處理：
// - 有缺少的 ID → point.ErrItemNotFound（context 附帶 missing）
// - 資料庫錯誤 → 包裝後返回
func (r *ItemRepositoryImpl) EnsureExist(tx shared.TransactionContext, items point.ItemSet) error {
	if items.IsEmpty() {
		return nil
	}

	db := resolveDB(r.db, tx)

	var found []int64
	if err := db.Model(&ItemGORM{}).
		Where("id IN ?", items.Int64s()).
		Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("failed to check items: %w", err)
	}

	if len(found) == items.Len() {
		return nil
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	missing := make([]int64, 0, items.Len()-len(found))
	for _, id := range items.Int64s() {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}

	return point.ErrItemNotFound.WithContext("missing", missing)
}

func itemsToDomain(models []ItemGORM) ([]*point.Item, error) {
	items := make([]*point.Item, 0, len(models))
	for i := range models {
		item, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
