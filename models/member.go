package models

import (
	"time"

	"gorm.io/gorm"
)

// Member carries the running booking ledger alongside the profile. The
// ledger columns are mutated only inside booking transactions, never by
// profile edits.
type Member struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	MembershipNo string `gorm:"uniqueIndex;size:32" json:"membership_no"`
	FullName     string `gorm:"size:255" json:"full_name"`
	Email        string `gorm:"size:150" json:"email"`
	Phone        string `gorm:"size:50" json:"phone"`
	Active       bool   `gorm:"default:true" json:"active"`

	// Booking-scoped ledger. BookingBalance = paid - due.
	TotalBookings     int        `gorm:"default:0" json:"total_bookings"`
	BookingAmountPaid float64    `gorm:"default:0" json:"booking_amount_paid"`
	BookingAmountDue  float64    `gorm:"default:0" json:"booking_amount_due"`
	BookingBalance    float64    `gorm:"default:0" json:"booking_balance"`
	LastBookingDate   *time.Time `json:"last_booking_date,omitempty"`

	// General club account. TO_BILL amounts land here instead of
	// booking-pending.
	Balance  float64 `gorm:"default:0" json:"balance"`
	DrAmount float64 `gorm:"default:0" json:"dr_amount"`
	CrAmount float64 `gorm:"default:0" json:"cr_amount"`
}
