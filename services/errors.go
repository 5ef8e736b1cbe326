package services

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel lookups. Controllers map these onto 404.
var (
	ErrMemberNotFound   = errors.New("member_not_found")
	ErrResourceNotFound = errors.New("resource_not_found")
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrBookingCancelled = errors.New("booking_cancelled")
)

// ValidationError means the caller sent a missing or malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictReason is the structured cause of a booking conflict, kept as a
// code so callers can render or log it uniformly.
type ConflictReason string

const (
	ConflictResourceInactive    ConflictReason = "RESOURCE_INACTIVE"
	ConflictOnHold              ConflictReason = "ON_HOLD"
	ConflictMaintenance         ConflictReason = "MAINTENANCE_WINDOW"
	ConflictAlreadyBooked       ConflictReason = "ALREADY_BOOKED"
	ConflictStandingReservation ConflictReason = "STANDING_RESERVATION"
	ConflictInvalidPayment      ConflictReason = "INVALID_PAYMENT"
)

// ConflictError reports why a window is not bookable or a payment state is
// not reachable. From/To name the blocking window when one exists.
type ConflictError struct {
	Reason  ConflictReason
	Message string
	From    *time.Time
	To      *time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func conflictf(reason ConflictReason, format string, args ...interface{}) error {
	return &ConflictError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// AsConflict unwraps err into a *ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
