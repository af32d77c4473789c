package point

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
)

// ===========================
// CreatePoint Use Case
// ===========================

// CreatePointCommand 註冊收集據點的命令
//
// 驗證（validator 標籤）：
// - name、email、whatsapp、city 必填；email 格式
// - latitude ∈ [-90, 90]、longitude ∈ [-180, 180]（必填，0 為有效值）
// - uf 兩個字母
// - items 至少一個正整數 ID
type CreatePointCommand struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Email     string   `json:"email" validate:"required,email,max=255"`
	WhatsApp  string   `json:"whatsapp" validate:"required,max=32"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	City      string   `json:"city" validate:"required,max=255"`
	UF        string   `json:"uf" validate:"required,len=2,alpha"`
	Items     []int64  `json:"items" validate:"required,min=1,dive,gt=0"`
	Image     string   `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// CreatePointUseCase 註冊收集據點 Use Case
//
// 職責：
// 1. 驗證輸入（結構驗證 + 值對象）
// 2. 在單一事務中確認品項存在、插入據點與品項關聯
// 3. 提交後發布 PointRegistered 事件（失敗只記錄日誌）
type CreatePointUseCase struct {
	pointRepo point.PointRepository
	itemRepo  point.ItemRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewCreatePointUseCase 創建 Use Case 實例
//
// publisher 可為 nil（不發布事件）
func NewCreatePointUseCase(
	pointRepo point.PointRepository,
	itemRepo point.ItemRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *CreatePointUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreatePointUseCase{
		pointRepo: pointRepo,
		itemRepo:  itemRepo,
		txManager: txManager,
		publisher: publisher,
		validate:  newValidator(),
		logger:    logger,
	}
}

// Execute 執行據點註冊
//
// 錯誤處理：
// - *ValidationError: 欄位驗證失敗（errors.Is → point.ErrValidationFailed）
// - point.ErrItemNotFound: 至少一個品項不存在，未寫入任何資料
// - 其他錯誤：事務已回滾，包裝後返回
func (uc *CreatePointUseCase) Execute(ctx context.Context, cmd CreatePointCommand) (*PointResult, error) {
	// 1. 結構驗證
	if err := validateStruct(uc.validate, cmd); err != nil {
		return nil, err
	}

	// 2. 建立值對象與聚合
	p, err := uc.buildPoint(cmd)
	if err != nil {
		return nil, err
	}

	// 3. 事務：確認品項 → 插入據點 → 插入關聯
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if err := uc.itemRepo.EnsureExist(tx, p.Items()); err != nil {
			return err
		}
		if err := uc.pointRepo.Save(tx, p); err != nil {
			return fmt.Errorf("failed to save point: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. 提交後發布事件
	uc.publishEvents(ctx, p)

	result := toPointResult(p)
	return &result, nil
}

func (uc *CreatePointUseCase) buildPoint(cmd CreatePointCommand) (*point.Point, error) {
	coords, err := point.NewCoordinates(*cmd.Latitude, *cmd.Longitude)
	if err != nil {
		return nil, err
	}

	uf, err := point.NewUF(cmd.UF)
	if err != nil {
		return nil, err
	}

	items, err := point.ItemSetFromInt64s(cmd.Items)
	if err != nil {
		return nil, err
	}

	return point.NewPoint(point.NewPointParams{
		Name:        cmd.Name,
		Email:       cmd.Email,
		WhatsApp:    cmd.WhatsApp,
		Image:       cmd.Image,
		Coordinates: coords,
		City:        cmd.City,
		UF:          uf,
		Items:       items,
	})
}

func (uc *CreatePointUseCase) publishEvents(ctx context.Context, p *point.Point) {
	events := p.PullEvents()
	if uc.publisher == nil || len(events) == 0 {
		return
	}
	if err := uc.publisher.PublishBatch(ctx, events); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish point events",
			"point_id", p.ID().Int64(),
			"error", err,
		)
	}
}
