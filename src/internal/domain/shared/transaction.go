package shared

import "context"

// TransactionContext 事務上下文介面
//
// 行為約定：
// - 由 TransactionManager.InTransaction 建立：在該事務中執行（事務傳播）
// - 由 NoTransaction 建立：auto-commit 模式，僅攜帶 request context
// - nil：auto-commit 模式，不攜帶 context（僅限測試與背景工作）
//
// Repository 方法約束：
//
//   - Save() 必須在事務中調用（寫操作需要原子性）
//   - FindXXX() 可以使用 NoTransaction(ctx) 或事務中的 ctx
//
// 範例：
//
//	txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
//	    if err := itemRepo.EnsureExist(tx, itemIDs); err != nil {
//	        return err
//	    }
//	    return pointRepo.Save(tx, p)
//	})
//
//	p, err := pointRepo.FindByID(shared.NoTransaction(ctx), id)
//
// Infrastructure Layer 負責實作具體的事務封裝（GORM）
// Domain Layer 和 Application Layer 只依賴此介面
type TransactionContext interface {
	// Context 返回此次操作綁定的 context（取消與逾時）
	Context() context.Context
}

// TransactionManager 事務管理器介面
//
// fn 返回錯誤或 panic 時回滾，否則提交
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error
}

// noTransaction 不參與事務的上下文（auto-commit）
type noTransaction struct {
	ctx context.Context
}

// NoTransaction 建立不參與事務的 TransactionContext
//
// 使用場景：獨立的讀操作（查詢據點、列出品項）
func NoTransaction(ctx context.Context) TransactionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return noTransaction{ctx: ctx}
}

func (n noTransaction) Context() context.Context {
	return n.ctx
}

// ContextOf 取得 TransactionContext 綁定的 context，nil 時返回 Background
func ContextOf(tx TransactionContext) context.Context {
	if tx == nil {
		return context.Background()
	}
	if ctx := tx.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
