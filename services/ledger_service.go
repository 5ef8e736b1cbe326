package services

import (
	"fmt"
	"math"
	"time"

	"club-backend/models"

	"gorm.io/gorm"
)

// LedgerDelta is the signed change a booking write applies to the
// member's running totals. Balance carries the TO_BILL spillover for the
// general club account.
type LedgerDelta struct {
	Paid       float64
	Owed       float64
	Balance    float64
	NewBooking bool
}

// LedgerService applies booking ledger deltas to members, always inside
// the booking transaction.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// roundCurrency rounds to the nearest whole currency unit, standard
// rounding. Ledgers are cumulative, so the policy must stay exact.
func roundCurrency(v float64) float64 {
	return math.Round(v)
}

// Apply increments the member's ledger columns by the (rounded) delta.
// BookingBalance tracks paid - due; the general Balance and Dr/Cr columns
// absorb TO_BILL spillover.
func (s *LedgerService) Apply(tx *gorm.DB, memberID uint, d LedgerDelta) error {
	paid := roundCurrency(d.Paid)
	owed := roundCurrency(d.Owed)
	balance := roundCurrency(d.Balance)

	updates := map[string]interface{}{
		"booking_amount_paid": gorm.Expr("booking_amount_paid + ?", paid),
		"booking_amount_due":  gorm.Expr("booking_amount_due + ?", owed),
		"booking_balance":     gorm.Expr("booking_balance + ?", paid-owed),
		"last_booking_date":   time.Now().UTC(),
	}
	if d.NewBooking {
		updates["total_bookings"] = gorm.Expr("total_bookings + 1")
	}
	if balance != 0 {
		updates["balance"] = gorm.Expr("balance + ?", balance)
		if balance > 0 {
			updates["dr_amount"] = gorm.Expr("dr_amount + ?", balance)
		} else {
			updates["cr_amount"] = gorm.Expr("cr_amount + ?", -balance)
		}
	}

	res := tx.Model(&models.Member{}).Where("id = ?", memberID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update member ledger: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Rounded returns the delta as it will be persisted, for receipts.
func (d LedgerDelta) Rounded() LedgerDelta {
	return LedgerDelta{
		Paid:       roundCurrency(d.Paid),
		Owed:       roundCurrency(d.Owed),
		Balance:    roundCurrency(d.Balance),
		NewBooking: d.NewBooking,
	}
}
