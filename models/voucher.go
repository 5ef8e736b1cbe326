package models

import (
	"time"

	"gorm.io/gorm"
)

type VoucherType string

const (
	VoucherFullPayment VoucherType = "FULL_PAYMENT"
	VoucherHalfPayment VoucherType = "HALF_PAYMENT"
	VoucherRefund      VoucherType = "REFUND"
)

type VoucherStatus string

const (
	VoucherPending   VoucherStatus = "PENDING"
	VoucherConfirmed VoucherStatus = "CONFIRMED"
	VoucherCancelled VoucherStatus = "CANCELLED"
)

// PaymentVoucher is an append-only audit record of a payment or refund
// event on one booking. Superseded vouchers are marked CANCELLED, never
// deleted. At most one non-cancelled FULL/HALF voucher exists per booking.
type PaymentVoucher struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID uint   `gorm:"index;column:booking_id" json:"booking_id"`
	VoucherNo string `gorm:"uniqueIndex;size:64" json:"voucher_no"`

	Amount      float64       `json:"amount"`
	PaymentMode PaymentMode   `gorm:"size:16" json:"payment_mode"`
	VoucherType VoucherType   `gorm:"size:24" json:"voucher_type"`
	Status      VoucherStatus `gorm:"size:16" json:"status"`
	Remarks     string        `gorm:"size:255" json:"remarks,omitempty"`
	IssuedBy    string        `gorm:"size:64" json:"issued_by,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`
}
