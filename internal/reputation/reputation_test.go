package reputation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentby-escrow/internal/domain"
)

func TestApplySuccess(t *testing.T) {
	t.Run("Increments both counters", func(t *testing.T) {
		r := &domain.Resource{Reputation: -1, TotalRentals: 4}
		assert.NoError(t, ApplySuccess(r))
		assert.Equal(t, int32(0), r.Reputation)
		assert.Equal(t, uint32(5), r.TotalRentals)
	})

	t.Run("Reputation overflow", func(t *testing.T) {
		r := &domain.Resource{Reputation: math.MaxInt32, TotalRentals: 1}
		assert.ErrorIs(t, ApplySuccess(r), domain.ErrCounterOverflow)
		assert.Equal(t, int32(math.MaxInt32), r.Reputation)
		assert.Equal(t, uint32(1), r.TotalRentals)
	})

	t.Run("Total rentals overflow", func(t *testing.T) {
		r := &domain.Resource{TotalRentals: math.MaxUint32}
		assert.ErrorIs(t, ApplySuccess(r), domain.ErrCounterOverflow)
		assert.Equal(t, int32(0), r.Reputation)
	})
}

func TestApplyPenalty(t *testing.T) {
	tests := []struct {
		name     string
		start    int32
		expected int32
	}{
		{"Zero goes negative", 0, -1},
		{"Positive decrements", 5, 4},
		{"Saturates at minimum", math.MinInt32, math.MinInt32},
		{"One above minimum", math.MinInt32 + 1, math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.Resource{Reputation: tt.start, TotalRentals: 3}
			ApplyPenalty(r)
			assert.Equal(t, tt.expected, r.Reputation)
			assert.Equal(t, uint32(3), r.TotalRentals)
		})
	}
}
