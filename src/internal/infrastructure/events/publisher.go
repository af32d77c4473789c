// Package events 提供 shared.EventPublisher 的進程內實作
package events

import (
	"context"
	"log/slog"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/metrics"
)

// LogPublisher 將領域事件寫入結構化日誌並累計指標
//
// 沒有外部訊息系統；事件在事務提交後同步發布
type LogPublisher struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

var _ shared.EventPublisher = (*LogPublisher)(nil)

// NewLogPublisher 創建發布器；m 可為 nil
func NewLogPublisher(logger *slog.Logger, m *metrics.Metrics) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger, metrics: m}
}

// Publish 發布單一事件
func (p *LogPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	attrs := []any{
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
	}
	if registered, ok := event.(*point.PointRegisteredEvent); ok {
		attrs = append(attrs,
			"city", registered.City(),
			"uf", registered.UF().String(),
			"item_count", registered.ItemCount(),
		)
	}
	p.logger.InfoContext(ctx, "domain event published", attrs...)

	if p.metrics != nil {
		p.metrics.DomainEvents.WithLabelValues(event.EventType()).Inc()
		if event.EventType() == point.EventTypePointRegistered {
			p.metrics.PointsRegistered.Inc()
		}
	}
	return nil
}

// PublishBatch 依序發布多個事件，遇到錯誤即停止
func (p *LogPublisher) PublishBatch(ctx context.Context, events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
