package utils

import (
	"errors"
	"fmt"
	"math/bits"

	"rentby-escrow/internal/domain"
)

const SecondsPerHour = 3600

var ErrQuoteOverflow = errors.New("escrow quote overflows uint64")

// EscrowQuote breaks down the suggested escrow amount for a rental.
type EscrowQuote struct {
	DurationSeconds int64  `json:"duration_seconds"`
	BilledHours     uint64 `json:"billed_hours"`
	HourlyRate      uint64 `json:"hourly_rate"`
	Total           uint64 `json:"total"`
}

// BilledHours rounds a duration up to whole hours. A zero duration bills
// nothing.
func BilledHours(durationSeconds int64) (uint64, error) {
	if durationSeconds < 0 {
		return 0, domain.ErrNegativeDuration
	}
	d := uint64(durationSeconds)
	return d/SecondsPerHour + boolToUint(d%SecondsPerHour != 0), nil
}

// QuoteEscrow multiplies the resource's hourly rate by the billed hours. The
// result is advisory: CreateRental accepts whatever amount the renter offers.
func QuoteEscrow(resource *domain.Resource, durationSeconds int64) (*EscrowQuote, error) {
	hours, err := BilledHours(durationSeconds)
	if err != nil {
		return nil, err
	}
	hi, total := bits.Mul64(resource.HourlyRate, hours)
	if hi != 0 {
		return nil, fmt.Errorf("%w: %d hours at %d", ErrQuoteOverflow, hours, resource.HourlyRate)
	}
	return &EscrowQuote{
		DurationSeconds: durationSeconds,
		BilledHours:     hours,
		HourlyRate:      resource.HourlyRate,
		Total:           total,
	}, nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
