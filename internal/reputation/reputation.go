// Package reputation holds the only rules allowed to change a resource's
// reputation and rental counters.
package reputation

import (
	"fmt"
	"math"

	"rentby-escrow/internal/domain"
)

// ApplySuccess credits a resource for a rental that paid its owner.
func ApplySuccess(r *domain.Resource) error {
	if r.Reputation == math.MaxInt32 || r.TotalRentals == math.MaxUint32 {
		return fmt.Errorf("%w: reputation=%d total_rentals=%d", domain.ErrCounterOverflow, r.Reputation, r.TotalRentals)
	}
	r.Reputation++
	r.TotalRentals++
	return nil
}

// ApplyPenalty debits a resource for a dispute refunded to the renter. The
// score saturates at math.MinInt32 and TotalRentals is left unchanged.
func ApplyPenalty(r *domain.Resource) {
	if r.Reputation > math.MinInt32 {
		r.Reputation--
	}
}
