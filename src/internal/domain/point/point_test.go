package point_test

import (
	"errors"
	"testing"

	"github.com/jackyeh168/ecoleta/src/internal/domain/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams(t *testing.T) point.NewPointParams {
	t.Helper()
	coords, err := point.NewCoordinates(-23.5, -46.6)
	require.NoError(t, err)
	uf, err := point.NewUF("SP")
	require.NoError(t, err)
	items, err := point.ItemSetFromInt64s([]int64{1, 2})
	require.NoError(t, err)

	return point.NewPointParams{
		Name:        "Eco Center",
		Email:       "a@b.com",
		WhatsApp:    "1",
		Coordinates: coords,
		City:        "São Paulo",
		UF:          uf,
		Items:       items,
	}
}

// ===========================
// NewPoint
// ===========================

func TestNewPoint_ValidParams_Success(t *testing.T) {
	// Arrange
	params := validParams(t)

	// Act
	p, err := point.NewPoint(params)

	// Assert
	require.NoError(t, err)
	assert.True(t, p.ID().IsEmpty(), "ID is assigned by the repository")
	assert.Equal(t, "Eco Center", p.Name())
	assert.Equal(t, "São Paulo", p.City())
	assert.Equal(t, "SP", p.UF().String())
	assert.Equal(t, 2, p.Items().Len())
	assert.Equal(t, point.DefaultImageURL, p.Image())
	assert.False(t, p.CreatedAt().IsZero())
	assert.Empty(t, p.PullEvents(), "no event before persistence")
}

func TestNewPoint_InvalidParams_ReturnsError(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *point.NewPointParams)
		wantErr error
	}{
		{"空白名稱", func(p *point.NewPointParams) { p.Name = "   " }, point.ErrInvalidName},
		{"空白城市", func(p *point.NewPointParams) { p.City = "" }, point.ErrInvalidLocation},
		{"缺少州代碼", func(p *point.NewPointParams) { p.UF = point.UF{} }, point.ErrInvalidUF},
		{"沒有品項", func(p *point.NewPointParams) { p.Items = point.NewItemSet(nil) }, point.ErrEmptyItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams(t)
			tt.mutate(&params)

			p, err := point.NewPoint(params)

			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPoint_CustomImage_Kept(t *testing.T) {
	params := validParams(t)
	params.Image = "https://example.com/p.png"

	p, err := point.NewPoint(params)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/p.png", p.Image())
}

// ===========================
// MarkPersisted / events
// ===========================

func TestMarkPersisted_AssignsIDAndRecordsEventOnce(t *testing.T) {
	// Arrange
	p, err := point.NewPoint(validParams(t))
	require.NoError(t, err)
	id, err := point.PointIDFromInt64(9)
	require.NoError(t, err)

	// Act
	p.MarkPersisted(id)
	p.MarkPersisted(id)
	events := p.PullEvents()

	// Assert
	assert.Equal(t, int64(9), p.ID().Int64())
	require.Len(t, events, 1)
	assert.Equal(t, point.EventTypePointRegistered, events[0].EventType())
	assert.Equal(t, "9", events[0].AggregateID())
	assert.NotEmpty(t, events[0].EventID())

	registered, ok := events[0].(*point.PointRegisteredEvent)
	require.True(t, ok)
	assert.Equal(t, 2, registered.ItemCount())
	assert.Equal(t, "SP", registered.UF().String())

	assert.Empty(t, p.PullEvents(), "events are cleared after pull")
}

func TestIsLocatedIn(t *testing.T) {
	p, err := point.NewPoint(validParams(t))
	require.NoError(t, err)
	sp, _ := point.NewUF("sp")
	rj, _ := point.NewUF("RJ")

	assert.True(t, p.IsLocatedIn("São Paulo", sp))
	assert.False(t, p.IsLocatedIn("São Paulo", rj))
	assert.False(t, p.IsLocatedIn("Campinas", sp))
}

// ===========================
// DomainError
// ===========================

func TestDomainError_WithContext_PreservesIdentity(t *testing.T) {
	err := point.ErrPointNotFound.WithContext("point_id", "5")

	assert.True(t, errors.Is(err, point.ErrPointNotFound))
	assert.False(t, errors.Is(err, point.ErrItemNotFound))
	assert.Contains(t, err.Error(), "POINT_NOT_FOUND")
	assert.Contains(t, err.Error(), "point_id")

	var domainErr *point.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.True(t, domainErr.IsNotFound())
	assert.Equal(t, "Point not found.", domainErr.Message)
}

func TestDomainError_WithContext_OddArguments_Panics(t *testing.T) {
	assert.Panics(t, func() {
		_ = point.ErrPointNotFound.WithContext("only-key")
	})
}
