package persistence

import (
	"context"

	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
//
// - 實作 shared.TransactionContext 介面
// - 封裝 *gorm.DB，不洩漏到 Domain Layer
// - GetDB() 僅供 Infrastructure Layer 內部使用
type gormTransactionContext struct {
	ctx context.Context
	db  *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
//
// 參數：
// - ctx: 請求 context
// - db: 事務中的 GORM 連接
func NewGORMTransactionContext(ctx context.Context, db *gorm.DB) shared.TransactionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &gormTransactionContext{ctx: ctx, db: db}
}

// Context 實作 shared.TransactionContext
func (c *gormTransactionContext) Context() context.Context {
	return c.ctx
}

// GetDB 獲取 GORM DB 連接（不在 shared.TransactionContext 介面中）
func (c *gormTransactionContext) GetDB() *gorm.DB {
	return c.db
}

// gormTx Repository 用於辨識事務上下文的介面
type gormTx interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// resolveDB 獲取資料庫實例
//
// 邏輯：
// - tx 是 GORM 事務上下文：返回事務中的 DB
// - tx 攜帶 context：返回綁定該 context 的預設 DB（auto-commit）
// - tx 為 nil：返回預設 DB
func resolveDB(db *gorm.DB, tx shared.TransactionContext) *gorm.DB {
	if gtx, ok := tx.(gormTx); ok {
		return gtx.GetDB()
	}
	if tx != nil {
		return db.WithContext(shared.ContextOf(tx))
	}
	return db
}

// ===========================
// GORMTransactionManager
// ===========================

// GORMTransactionManager 以 gorm.DB.Transaction 實作 shared.TransactionManager
//
// 行為：
// - fn 返回 nil：提交
// - fn 返回錯誤：回滾，原樣返回該錯誤
// - fn panic：回滾後重新 panic
type GORMTransactionManager struct {
	db *gorm.DB
}

var _ shared.TransactionManager = (*GORMTransactionManager)(nil)

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return m.db.WithContext(ctx).Transaction(func(txDB *gorm.DB) error {
		return fn(NewGORMTransactionContext(ctx, txDB))
	})
}
