package point

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// Point 領域事件
// ===========================

// EventTypePointRegistered 據點註冊事件類型
const EventTypePointRegistered = "point.registered"

// PointRegisteredEvent 據點註冊完成事件（事務提交後發布）
type PointRegisteredEvent struct {
	eventID    string
	pointID    PointID
	city       string
	uf         UF
	itemCount  int
	occurredAt time.Time
}

// NewPointRegisteredEvent 創建據點註冊事件
func NewPointRegisteredEvent(p *Point) *PointRegisteredEvent {
	return &PointRegisteredEvent{
		eventID:    uuid.New().String(),
		pointID:    p.ID(),
		city:       p.City(),
		uf:         p.UF(),
		itemCount:  p.Items().Len(),
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointRegisteredEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointRegisteredEvent) EventType() string {
	return EventTypePointRegistered
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointRegisteredEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointRegisteredEvent) AggregateID() string {
	return e.pointID.String()
}

func (e *PointRegisteredEvent) PointID() PointID { return e.pointID }
func (e *PointRegisteredEvent) City() string { return e.city }
func (e *PointRegisteredEvent) UF() UF { return e.uf }
func (e *PointRegisteredEvent) ItemCount() int { return e.itemCount }
