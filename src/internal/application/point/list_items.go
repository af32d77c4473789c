package point

import (
	"context"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
)

// ListItemsUseCase 列出品項目錄 Use Case
//
// baseURL 用於組合 image_url（如 http://localhost:3333）
type ListItemsUseCase struct {
	itemRepo point.ItemRepository
	baseURL  string
}

// NewListItemsUseCase 創建 Use Case 實例
func NewListItemsUseCase(itemRepo point.ItemRepository, baseURL string) *ListItemsUseCase {
	return &ListItemsUseCase{
		itemRepo: itemRepo,
		baseURL:  baseURL,
	}
}

// Execute 返回全部品項，依 ID 排序
func (uc *ListItemsUseCase) Execute(ctx context.Context) ([]ItemResult, error) {
	items, err := uc.itemRepo.FindAll(shared.NoTransaction(ctx))
	if err != nil {
		return nil, err
	}

	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		results = append(results, ItemResult{
			ID:       item.ID().Int64(),
			Title:    item.Title(),
			ImageURL: item.ImageURL(uc.baseURL),
		})
	}
	return results, nil
}
