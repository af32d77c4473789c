package point

import (
	"context"
	"fmt"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
)

// GetPointQuery 查詢單一據點
//
// ID 為路徑參數原始字串；非數字視為不存在
type GetPointQuery struct {
	ID string
}

// GetPointResult 據點與其品項名稱
type GetPointResult struct {
	Point      PointResult
	ItemTitles []string
}

// GetPointUseCase 查詢單一據點 Use Case（唯讀，不開啟事務）
type GetPointUseCase struct {
	pointRepo point.PointRepository
	itemRepo  point.ItemRepository
}

// NewGetPointUseCase 創建 Use Case 實例
func NewGetPointUseCase(pointRepo point.PointRepository, itemRepo point.ItemRepository) *GetPointUseCase {
	return &GetPointUseCase{
		pointRepo: pointRepo,
		itemRepo:  itemRepo,
	}
}

// Execute 執行查詢
//
// 錯誤處理：
// - point.ErrInvalidPointID / point.ErrPointNotFound: 據點不存在
func (uc *GetPointUseCase) Execute(ctx context.Context, q GetPointQuery) (*GetPointResult, error) {
	id, err := point.PointIDFromString(q.ID)
	if err != nil {
		return nil, err
	}

	tx := shared.NoTransaction(ctx)

	p, err := uc.pointRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.FindByPointID(tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load point items: %w", err)
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title())
	}

	return &GetPointResult{
		Point:      toPointResult(p),
		ItemTitles: titles,
	}, nil
}
