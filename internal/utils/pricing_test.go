package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentby-escrow/internal/domain"
)

func TestBilledHours(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected uint64
	}{
		{0, 0},
		{1, 1},
		{3600, 1},
		{3601, 2},
		{7200, 2},
		{18000, 5},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			hours, err := BilledHours(tt.seconds)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hours)
		})
	}

	t.Run("Negative duration", func(t *testing.T) {
		_, err := BilledHours(-1)
		assert.ErrorIs(t, err, domain.ErrNegativeDuration)
	})
}

func TestQuoteEscrow(t *testing.T) {
	t.Run("Five hours of compute", func(t *testing.T) {
		quote, err := QuoteEscrow(&domain.Resource{HourlyRate: 5_000_000}, 5*3600)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), quote.BilledHours)
		assert.Equal(t, uint64(25_000_000), quote.Total)
	})

	t.Run("Partial hour rounds up", func(t *testing.T) {
		quote, err := QuoteEscrow(&domain.Resource{HourlyRate: 10}, 90*60)
		require.NoError(t, err)
		assert.Equal(t, uint64(20), quote.Total)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := QuoteEscrow(&domain.Resource{HourlyRate: math.MaxUint64}, 7200)
		assert.ErrorIs(t, err, ErrQuoteOverflow)
	})
}
