package services

import (
	"errors"
	"fmt"
	"time"

	"club-backend/models"

	"gorm.io/gorm"
)

// Window is a normalized booking window. Slot is set for slot-based kinds
// (HALL, LAWN); Start/End then span the whole booking day.
type Window struct {
	Start time.Time
	End   time.Time
	Slot  *models.TimeSlot
}

// AvailabilityService answers whether a window on a resource is bookable.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Check runs the conflict checks in order, short-circuiting on the first
// failure: active flag, foreign unexpired hold, maintenance overlap,
// booking overlap, standing reservation. actor identifies the caller so
// its own hold does not block it. excludeBookingID skips the booking
// being edited. Call inside the booking transaction with the resource row
// already locked; the lock is what serializes concurrent creates.
func (s *AvailabilityService) Check(tx *gorm.DB, resource *models.Resource, w Window, actor string, excludeBookingID uint) error {
	if !resource.Active {
		return conflictf(ConflictResourceInactive, "resource %q is not active", resource.Name)
	}

	now := time.Now().UTC()
	if resource.OnHold && resource.HoldExpiry != nil && resource.HoldExpiry.After(now) && resource.HoldBy != actor {
		return &ConflictError{
			Reason:  ConflictOnHold,
			Message: fmt.Sprintf("resource %q is on hold until %s", resource.Name, resource.HoldExpiry.Format(time.RFC3339)),
			To:      resource.HoldExpiry,
		}
	}

	var mw models.MaintenanceWindow
	err := tx.
		Where("resource_id = ? AND start_date < ? AND end_date > ?", resource.ID, w.End, w.Start).
		First(&mw).Error
	if err == nil {
		return &ConflictError{
			Reason:  ConflictMaintenance,
			Message: fmt.Sprintf("resource under maintenance from %s to %s", mw.StartDate.Format("2006-01-02"), mw.EndDate.Format("2006-01-02")),
			From:    &mw.StartDate,
			To:      &mw.EndDate,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.checkBookings(tx, resource, w, excludeBookingID); err != nil {
		return err
	}

	return s.checkStandingReservations(tx, resource.ID, w)
}

// checkBookings rejects the window when a CONFIRMED booking already
// covers it. Range windows use half-open semantics: a checkout on day N
// does not conflict with a check-in on day N.
func (s *AvailabilityService) checkBookings(tx *gorm.DB, resource *models.Resource, w Window, excludeBookingID uint) error {
	q := tx.Model(&models.Booking{}).
		Where("resource_id = ? AND status = ?", resource.ID, models.BookingConfirmed)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	switch resource.Kind {
	case models.KindRoom:
		q = q.Where("check_in < ? AND check_out > ?", w.End, w.Start)
	case models.KindPhotoshoot:
		q = q.Where("start_time < ? AND end_time > ?", w.End, w.Start)
	default:
		if w.Slot == nil {
			return invalidField("time_slot", "required for %s bookings", resource.Kind)
		}
		q = q.Where("booking_date = ? AND time_slot = ?", w.Start, *w.Slot)
	}

	var existing models.Booking
	err := q.First(&existing).Error
	if err == nil {
		return &ConflictError{
			Reason:  ConflictAlreadyBooked,
			Message: fmt.Sprintf("window already booked (reference %s)", existing.ReferenceCode),
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *AvailabilityService) checkStandingReservations(tx *gorm.DB, resourceID uint, w Window) error {
	var reservations []models.StandingReservation
	if err := tx.
		Where("resource_id = ? AND reserved_from < ? AND reserved_to > ?", resourceID, w.End, w.Start).
		Find(&reservations).Error; err != nil {
		return err
	}
	for i := range reservations {
		r := &reservations[i]
		// Slot-scoped reservations only block the matching slot.
		if r.TimeSlot != nil && w.Slot != nil && *r.TimeSlot != *w.Slot {
			continue
		}
		return &ConflictError{
			Reason:  ConflictStandingReservation,
			Message: fmt.Sprintf("blocked by standing reservation from %s to %s", r.ReservedFrom.Format("2006-01-02"), r.ReservedTo.Format("2006-01-02")),
			From:    &r.ReservedFrom,
			To:      &r.ReservedTo,
		}
	}
	return nil
}
