package services

import "club-backend/models"

// Allocation is the result of splitting a charge by payment status.
// Deferred is the TO_BILL remainder routed to the member's general
// balance; it is never stored as booking-pending.
type Allocation struct {
	Paid     float64
	Owed     float64
	Deferred float64
}

// Allocate computes paid/owed for a total charge under the requested
// payment status.
//
//	PAID      -> paid=total, owed=0
//	UNPAID    -> paid=0, owed=total
//	HALF_PAID -> paid=requestedPaid, must satisfy 0 < paid < total
//	TO_BILL   -> paid=requestedPaid (may be 0); remainder is deferred
func Allocate(total float64, status models.PaymentStatus, requestedPaid float64) (Allocation, error) {
	if total < 0 {
		return Allocation{}, invalidField("total_price", "must not be negative")
	}

	switch status {
	case models.StatusPaid:
		return Allocation{Paid: total}, nil

	case models.StatusUnpaid:
		return Allocation{Owed: total}, nil

	case models.StatusHalfPaid:
		if requestedPaid <= 0 {
			return Allocation{}, conflictf(ConflictInvalidPayment, "half-paid amount must be greater than zero")
		}
		if requestedPaid >= total {
			return Allocation{}, conflictf(ConflictInvalidPayment, "half-paid amount %.2f must be less than total %.2f", requestedPaid, total)
		}
		return Allocation{Paid: requestedPaid, Owed: total - requestedPaid}, nil

	case models.StatusToBill:
		if requestedPaid < 0 {
			return Allocation{}, conflictf(ConflictInvalidPayment, "paid amount must not be negative")
		}
		if requestedPaid > total {
			return Allocation{}, conflictf(ConflictInvalidPayment, "paid amount %.2f exceeds total %.2f", requestedPaid, total)
		}
		return Allocation{Paid: requestedPaid, Deferred: total - requestedPaid}, nil

	default:
		return Allocation{}, invalidField("payment_status", "unknown status %q", status)
	}
}
