package models

import (
	"time"

	"gorm.io/gorm"
)

type ResourceKind string

const (
	KindRoom       ResourceKind = "ROOM"
	KindHall       ResourceKind = "HALL"
	KindLawn       ResourceKind = "LAWN"
	KindPhotoshoot ResourceKind = "PHOTOSHOOT"
)

// Resource is a bookable facility. Hold fields implement the soft
// checkout lock: a non-expired hold by a different actor blocks booking,
// the booking flow clears a hold owned by the same actor. Expiry is lazy;
// nothing reaps expired holds.
type Resource struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Kind   ResourceKind `gorm:"index;size:16" json:"kind"`
	Name   string       `gorm:"uniqueIndex;size:100" json:"name"`
	Active bool         `gorm:"default:true" json:"active"`

	MemberPrice float64 `json:"member_price"`
	GuestPrice  float64 `json:"guest_price"`
	MinGuests   int     `gorm:"default:0" json:"min_guests"`
	MaxGuests   int     `gorm:"default:0" json:"max_guests"`

	Description string `gorm:"type:text" json:"description"`

	OnHold     bool       `gorm:"default:false" json:"on_hold"`
	HoldExpiry *time.Time `json:"hold_expiry,omitempty"`
	HoldBy     string     `gorm:"size:64" json:"hold_by,omitempty"`
}

// MaintenanceWindow blocks any overlapping booking window on its resource.
type MaintenanceWindow struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ResourceID uint      `gorm:"index;column:resource_id" json:"resource_id"`
	StartDate  time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate    time.Time `gorm:"column:end_date" json:"end_date"`
	Reason     string    `gorm:"size:255" json:"reason,omitempty"`

	Resource Resource `gorm:"foreignKey:ResourceID" json:"-"`
}

// StandingReservation is an administrative block, distinct from a paid
// booking and taking precedence over new ones. A reservation with a
// TimeSlot only blocks that slot.
type StandingReservation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ResourceID   uint      `gorm:"index;column:resource_id" json:"resource_id"`
	ReservedFrom time.Time `gorm:"column:reserved_from" json:"reserved_from"`
	ReservedTo   time.Time `gorm:"column:reserved_to" json:"reserved_to"`
	TimeSlot     *TimeSlot `gorm:"size:16" json:"time_slot,omitempty"`
	Remarks      string    `gorm:"size:255" json:"remarks,omitempty"`

	Resource Resource `gorm:"foreignKey:ResourceID" json:"-"`
}
