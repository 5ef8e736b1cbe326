package services

import "club-backend/models"

// BookingFinancials is the money snapshot of a booking before an edit.
type BookingFinancials struct {
	Total   float64
	Paid    float64
	Pending float64
	Status  models.PaymentStatus
}

// ChangeRequest carries the edited charge and, when the caller supplied
// one, an explicit payment status override.
type ChangeRequest struct {
	NewTotal      float64
	Status        *models.PaymentStatus
	RequestedPaid float64
}

// VoucherIssue describes one voucher the orchestrator must write.
type VoucherIssue struct {
	Type   models.VoucherType
	Amount float64
}

// ReconcileResult is the full outcome of reconciling an edit: the new
// booking amounts, the voucher plan, and the net ledger deltas.
// BalanceDelta is the change to the member's general (TO_BILL) balance.
type ReconcileResult struct {
	Total   float64
	Paid    float64
	Pending float64
	Refund  float64
	Status  models.PaymentStatus

	PaidDiff     float64
	OwedDiff     float64
	BalanceDelta float64

	SupersedeVouchers bool
	Issue             *VoucherIssue
	RefundVoucher     *VoucherIssue
}

// Reconcile classifies an edit into one of the update scenarios and
// produces the resulting amounts, voucher plan and ledger deltas. It is a
// pure function; running it twice over the same inputs yields the same
// deltas.
//
// Scenarios, checked in order:
//  1. explicit downgrade from PAID: administrative correction, vouchers
//     superseded, no refund.
//  2. charge dropped below the amount already paid: cap paid at the new
//     total, issue a PENDING refund voucher for the difference.
//  3. explicit status override: recompute purely from the new status.
//  4. charge increased with no override: paid carries forward, owed
//     absorbs the increase; a fully paid booking converts to HALF_PAID.
//  5. otherwise: carry paid forward and recompute owed.
//
// TO_BILL folding happens last: booking-pending is zeroed and the owed
// remainder moves to the member's general balance as BalanceDelta.
func Reconcile(old BookingFinancials, change ChangeRequest) (ReconcileResult, error) {
	if change.NewTotal < 0 {
		return ReconcileResult{}, invalidField("total_price", "must not be negative")
	}
	if change.Status != nil && !models.ValidPaymentStatus(*change.Status) {
		return ReconcileResult{}, invalidField("payment_status", "unknown status %q", *change.Status)
	}

	explicit := change.Status != nil
	downgrade := explicit && old.Status == models.StatusPaid &&
		(*change.Status == models.StatusHalfPaid || *change.Status == models.StatusUnpaid)

	res := ReconcileResult{Total: change.NewTotal}

	switch {
	case downgrade:
		alloc, err := Allocate(change.NewTotal, *change.Status, change.RequestedPaid)
		if err != nil {
			return ReconcileResult{}, err
		}
		res.Paid = alloc.Paid
		res.Pending = alloc.Owed
		res.Status = *change.Status
		res.PaidDiff = alloc.Paid - old.Paid
		res.OwedDiff = alloc.Owed - old.Pending
		res.SupersedeVouchers = true
		if alloc.Paid > 0 {
			res.Issue = &VoucherIssue{Type: models.VoucherHalfPayment, Amount: alloc.Paid}
		}

	case change.NewTotal < old.Paid:
		// Charge dropped below collected cash. Cash already taken stays on
		// the ledger; the overage becomes a pending refund owed back to
		// the member.
		refund := old.Paid - change.NewTotal
		res.Paid = change.NewTotal
		res.Pending = 0
		res.Refund = refund
		res.Status = models.StatusPaid
		res.PaidDiff = 0
		res.OwedDiff = refund - old.Pending
		res.SupersedeVouchers = true
		res.Issue = &VoucherIssue{Type: models.VoucherFullPayment, Amount: change.NewTotal}
		res.RefundVoucher = &VoucherIssue{Type: models.VoucherRefund, Amount: refund}

	case explicit:
		alloc, err := Allocate(change.NewTotal, *change.Status, change.RequestedPaid)
		if err != nil {
			return ReconcileResult{}, err
		}
		res.Paid = alloc.Paid
		res.Pending = alloc.Owed
		res.Status = *change.Status
		res.PaidDiff = alloc.Paid - old.Paid
		res.OwedDiff = alloc.Owed - old.Pending

		switch {
		case res.PaidDiff > 0 && *change.Status == models.StatusPaid:
			// Final payment completing a partial booking: the voucher
			// covers the entire remaining amount, not just the delta.
			res.SupersedeVouchers = true
			res.Issue = &VoucherIssue{Type: models.VoucherFullPayment, Amount: change.NewTotal - old.Paid}
		case res.PaidDiff > 0:
			res.SupersedeVouchers = true
			res.Issue = &VoucherIssue{Type: models.VoucherHalfPayment, Amount: res.PaidDiff}
		case res.PaidDiff < 0 || (old.Status == models.StatusPaid && *change.Status != models.StatusPaid):
			res.SupersedeVouchers = true
			if alloc.Paid > 0 {
				res.Issue = &VoucherIssue{Type: models.VoucherHalfPayment, Amount: alloc.Paid}
			}
		}

	case change.NewTotal > old.Total:
		res.Paid = old.Paid
		switch old.Status {
		case models.StatusPaid:
			// Fully paid booking grew: keep the cash, convert to partial.
			res.Pending = change.NewTotal - old.Paid
			res.Status = models.StatusHalfPaid
			res.SupersedeVouchers = true
			res.Issue = &VoucherIssue{Type: models.VoucherHalfPayment, Amount: old.Paid}
		case models.StatusToBill:
			res.Pending = 0
			res.Status = models.StatusToBill
		default:
			res.Pending = change.NewTotal - old.Paid
			if old.Paid > 0 {
				res.Status = models.StatusHalfPaid
			} else {
				res.Status = models.StatusUnpaid
			}
		}
		res.OwedDiff = res.Pending - old.Pending

	default:
		res.Paid = old.Paid
		switch {
		case old.Status == models.StatusToBill:
			res.Pending = 0
			res.Status = models.StatusToBill
		case change.NewTotal == old.Paid && old.Paid > 0:
			res.Pending = 0
			res.Status = models.StatusPaid
			if old.Status != models.StatusPaid {
				res.SupersedeVouchers = true
				res.Issue = &VoucherIssue{Type: models.VoucherFullPayment, Amount: old.Paid}
			}
		default:
			res.Pending = change.NewTotal - old.Paid
			res.Status = old.Status
		}
		res.OwedDiff = res.Pending - old.Pending
	}

	// TO_BILL folding: nothing stays booking-pending, the remainder moves
	// to the general balance.
	oldDeferred := 0.0
	if old.Status == models.StatusToBill {
		oldDeferred = old.Total - old.Paid
	}
	newDeferred := 0.0
	if res.Status == models.StatusToBill {
		newDeferred = res.Total - res.Paid
		res.Pending = 0
	}
	res.BalanceDelta = newDeferred - oldDeferred

	return res, nil
}
