package point

import "github.com/jackyeh168/ecoleta/src/internal/domain/shared"

// ===========================
// Repository 介面
// ===========================

// PointRepository 收集據點倉儲介面
//
// 事務管理策略：
//   - Save(): tx 必須來自 TransactionManager.InTransaction
//   - FindXXX(): tx 可為 shared.NoTransaction(ctx) 或事務中的 tx
//
// 註冊流程範例：
//
//	txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
//	    if err := itemRepo.EnsureExist(tx, p.Items()); err != nil {
//	        return err
//	    }
//	    return pointRepo.Save(tx, p)
//	})
type PointRepository interface {
	// Save 插入據點及其品項關聯（point 先、point_items 後）
	// 後置條件：p.ID() 為資料庫分配的 ID
	Save(tx shared.TransactionContext, p *Point) error

	// FindByID 根據 ID 查找據點（含品項集合）
	// 返回：找到的據點，或 ErrPointNotFound
	FindByID(tx shared.TransactionContext, id PointID) (*Point, error)

	// FindByLocationAndItems 查詢位於 city+uf 且至少接受 items 中一個品項的據點
	// 結果去重，依 ID 排序；items 為空時返回空列表
	FindByLocationAndItems(tx shared.TransactionContext, city string, uf UF, items ItemSet) ([]*Point, error)
}

// ItemRepository 回收品項倉儲介面（唯讀參考資料）
type ItemRepository interface {
	// FindAll 返回全部品項，依 ID 排序
	FindAll(tx shared.TransactionContext) ([]*Item, error)

	// FindByPointID 返回據點接受的品項，依 ID 排序
	FindByPointID(tx shared.TransactionContext, id PointID) ([]*Item, error)

	// EnsureExist 確認所有 ID 都存在
	// 錯誤：ErrItemNotFound（附帶缺少的 ID）
	EnsureExist(tx shared.TransactionContext, items ItemSet) error
}
