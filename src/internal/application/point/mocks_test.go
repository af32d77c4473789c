package point

import (
	"context"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/jackyeh168/ecoleta/src/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// ===========================
// Mocks
// ===========================

// MockPointRepository mock implementation of PointRepository
type MockPointRepository struct {
	mock.Mock
}

func (m *MockPointRepository) Save(tx shared.TransactionContext, p *point.Point) error {
	args := m.Called(tx, p)
	return args.Error(0)
}

func (m *MockPointRepository) FindByID(tx shared.TransactionContext, id point.PointID) (*point.Point, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*point.Point), args.Error(1)
}

func (m *MockPointRepository) FindByLocationAndItems(
	tx shared.TransactionContext,
	city string,
	uf point.UF,
	items point.ItemSet,
) ([]*point.Point, error) {
	args := m.Called(tx, city, uf, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*point.Point), args.Error(1)
}

// MockItemRepository mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindAll(tx shared.TransactionContext) ([]*point.Item, error) {
	args := m.Called(tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*point.Item), args.Error(1)
}

func (m *MockItemRepository) FindByPointID(tx shared.TransactionContext, id point.PointID) ([]*point.Item, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*point.Item), args.Error(1)
}

func (m *MockItemRepository) EnsureExist(tx shared.TransactionContext, items point.ItemSet) error {
	args := m.Called(tx, items)
	return args.Error(0)
}

// MockTransactionManager 直接執行 fn；fn 返回錯誤時記錄 RolledBack
type MockTransactionManager struct {
	InTransactionCallCount int
	RolledBack             bool
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	err := fn(shared.NoTransaction(ctx))
	if err != nil {
		m.RolledBack = true
	}
	return err
}

// MockEventPublisher 記錄發布的事件
type MockEventPublisher struct {
	Published []shared.DomainEvent
	FailWith  error
}

func (m *MockEventPublisher) Publish(ctx context.Context, event shared.DomainEvent) error {
	return m.PublishBatch(ctx, []shared.DomainEvent{event})
}

func (m *MockEventPublisher) PublishBatch(_ context.Context, events []shared.DomainEvent) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Published = append(m.Published, events...)
	return nil
}
