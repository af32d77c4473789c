package point

import (
	"context"
	"strings"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
)

// ListPointsQuery 依位置與品項篩選據點
//
// Items 為逗號分隔的品項 ID（如 "1,2,3"）
type ListPointsQuery struct {
	City  string
	UF    string
	Items string
}

// ListPointsUseCase 列出據點 Use Case（唯讀）
type ListPointsUseCase struct {
	pointRepo point.PointRepository
}

// NewListPointsUseCase 創建 Use Case 實例
func NewListPointsUseCase(pointRepo point.PointRepository) *ListPointsUseCase {
	return &ListPointsUseCase{pointRepo: pointRepo}
}

// Execute 執行查詢
//
// 行為：
// - items 含非整數項目 → point.ErrInvalidItemFilter
// - items 為空、city 為空或 uf 不是合法州代碼 → 空結果（不可能有符合的據點）
func (uc *ListPointsUseCase) Execute(ctx context.Context, q ListPointsQuery) ([]PointResult, error) {
	items, err := point.ParseItemFilter(q.Items)
	if err != nil {
		return nil, err
	}

	city := strings.TrimSpace(q.City)
	uf, ufErr := point.NewUF(q.UF)
	if items.IsEmpty() || city == "" || ufErr != nil {
		return []PointResult{}, nil
	}

	points, err := uc.pointRepo.FindByLocationAndItems(shared.NoTransaction(ctx), city, uf, items)
	if err != nil {
		return nil, err
	}

	results := make([]PointResult, 0, len(points))
	for _, p := range points {
		results = append(results, toPointResult(p))
	}
	return results, nil
}
