package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TimeSlot string

const (
	SlotMorning TimeSlot = "MORNING"
	SlotEvening TimeSlot = "EVENING"
	SlotNight   TimeSlot = "NIGHT"
)

func ValidTimeSlot(s TimeSlot) bool {
	return s == SlotMorning || s == SlotEvening || s == SlotNight
}

type PaymentStatus string

const (
	StatusUnpaid   PaymentStatus = "UNPAID"
	StatusHalfPaid PaymentStatus = "HALF_PAID"
	StatusPaid     PaymentStatus = "PAID"
	StatusToBill   PaymentStatus = "TO_BILL"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case StatusUnpaid, StatusHalfPaid, StatusPaid, StatusToBill:
		return true
	}
	return false
}

type PaymentMode string

const (
	ModeCash   PaymentMode = "CASH"
	ModeOnline PaymentMode = "ONLINE"
)

type PricingType string

const (
	PricingMember PricingType = "MEMBER"
	PricingGuest  PricingType = "GUEST"
)

const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking uses one of three window shapes depending on Kind:
// CheckIn/CheckOut for ROOM, BookingDate+TimeSlot for HALL and LAWN,
// StartTime/EndTime for PHOTOSHOOT.
//
// PaidAmount + PendingAmount == TotalPrice for every status except
// TO_BILL, where PendingAmount is zero and the owed remainder sits on
// the member's general balance.
type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string       `gorm:"uniqueIndex;size:64" json:"reference_code"`
	Kind          ResourceKind `gorm:"index;size:16" json:"kind"`
	ResourceID    uint         `gorm:"index;column:resource_id" json:"resource_id"`
	MemberID      uint         `gorm:"index;column:member_id" json:"member_id"`
	Status        string       `gorm:"size:16;default:CONFIRMED" json:"status"`

	CheckIn     *time.Time `gorm:"column:check_in" json:"check_in,omitempty"`
	CheckOut    *time.Time `gorm:"column:check_out" json:"check_out,omitempty"`
	BookingDate *time.Time `gorm:"column:booking_date" json:"booking_date,omitempty"`
	TimeSlot    *TimeSlot  `gorm:"size:16" json:"time_slot,omitempty"`
	StartTime   *time.Time `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime     *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`

	PricingType   PricingType   `gorm:"size:16;default:MEMBER" json:"pricing_type"`
	TotalPrice    float64       `json:"total_price"`
	PaymentStatus PaymentStatus `gorm:"size:16" json:"payment_status"`
	PaidAmount    float64       `json:"paid_amount"`
	PendingAmount float64       `json:"pending_amount"`
	RefundAmount  float64       `json:"refund_amount"`

	PaidBy       string `gorm:"size:16;default:MEMBER" json:"paid_by"`
	GuestName    string `gorm:"size:255" json:"guest_name,omitempty"`
	GuestContact string `gorm:"size:50" json:"guest_contact,omitempty"`

	GuestCount      int            `gorm:"default:0" json:"guest_count"`
	Adults          int            `gorm:"default:1" json:"adults"`
	Children        int            `gorm:"default:0" json:"children"`
	SpecialRequests string         `gorm:"type:text" json:"special_requests,omitempty"`
	Extras          datatypes.JSON `gorm:"column:extras" json:"extras,omitempty"`

	Resource Resource         `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	Member   Member           `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Vouchers []PaymentVoucher `gorm:"foreignKey:BookingID" json:"vouchers,omitempty"`
}
