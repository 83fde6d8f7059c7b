package shared

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel by code", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "Invoice not found")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("load invoice: %w", ErrInvalidState)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreAggregateRoot(t *testing.T) {
	storeID := uuid.New()
	root := NewStoreAggregateRoot(storeID)

	assert.Equal(t, storeID, root.StoreID)
	assert.Equal(t, 1, root.GetVersion())
	assert.NotEqual(t, uuid.Nil, root.GetID())

	before := root.UpdatedAt
	root.IncrementVersion()
	assert.Equal(t, 2, root.GetVersion())
	assert.False(t, root.UpdatedAt.Before(before))

	evt := NewBaseDomainEvent("Tested", "Thing", root.ID, storeID)
	root.AddDomainEvent(&evt)
	assert.Len(t, root.GetDomainEvents(), 1)
	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}

func TestFilter_OffsetAndLimit(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		offset int
		limit  int
	}{
		{"defaults", DefaultFilter(), 0, 20},
		{"third page", Filter{Page: 3, PageSize: 10}, 20, 10},
		{"zero page size", Filter{Page: 2}, 20, 20},
		{"clamped page size", Filter{Page: 1, PageSize: 500}, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.filter.Offset())
			assert.Equal(t, tt.limit, tt.filter.Limit())
		})
	}
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(21), p.Total)
}
