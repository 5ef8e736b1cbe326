package services

import (
	"math"
	"time"

	"club-backend/models"
)

// KindPolicy captures what differs between resource kinds: the window
// shape, the price rule, and the capacity rule. The orchestrator itself
// is kind-agnostic.
type KindPolicy interface {
	Kind() models.ResourceKind
	Window(req *BookingRequest) (Window, error)
	Price(res *models.Resource, req *BookingRequest) float64
	CheckCapacity(res *models.Resource, req *BookingRequest) error
}

func PolicyFor(kind models.ResourceKind) (KindPolicy, error) {
	switch kind {
	case models.KindRoom:
		return roomPolicy{}, nil
	case models.KindHall, models.KindLawn:
		return slotPolicy{kind: kind}, nil
	case models.KindPhotoshoot:
		return photoshootPolicy{}, nil
	default:
		return nil, invalidField("resource_kind", "unknown kind %q", kind)
	}
}

func unitPrice(res *models.Resource, pricing models.PricingType) float64 {
	if pricing == models.PricingGuest {
		return res.GuestPrice
	}
	return res.MemberPrice
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// roomPolicy: multi-night stays priced per night, half-open
// [check_in, check_out) windows.
type roomPolicy struct{}

func (roomPolicy) Kind() models.ResourceKind { return models.KindRoom }

func (roomPolicy) Window(req *BookingRequest) (Window, error) {
	if req.CheckIn == nil || req.CheckOut == nil {
		return Window{}, invalidField("check_in", "check_in and check_out are required for ROOM bookings")
	}
	ci := dateOnly(*req.CheckIn)
	co := dateOnly(*req.CheckOut)
	if !co.After(ci) {
		return Window{}, invalidField("check_out", "must be after check_in")
	}
	return Window{Start: ci, End: co}, nil
}

func (p roomPolicy) Price(res *models.Resource, req *BookingRequest) float64 {
	w, err := p.Window(req)
	if err != nil {
		return 0
	}
	nights := int(w.End.Sub(w.Start).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return float64(nights) * unitPrice(res, req.PricingType)
}

func (roomPolicy) CheckCapacity(res *models.Resource, req *BookingRequest) error {
	guests := req.Adults + req.Children
	if res.MaxGuests > 0 && guests > res.MaxGuests {
		return invalidField("adults", "room holds at most %d guests, got %d", res.MaxGuests, guests)
	}
	return nil
}

// slotPolicy: single-day events (HALL, LAWN) booked by date + discrete
// time slot, priced flat per slot.
type slotPolicy struct {
	kind models.ResourceKind
}

func (p slotPolicy) Kind() models.ResourceKind { return p.kind }

func (p slotPolicy) Window(req *BookingRequest) (Window, error) {
	if req.BookingDate == nil {
		return Window{}, invalidField("booking_date", "required for %s bookings", p.kind)
	}
	if req.TimeSlot == nil || !models.ValidTimeSlot(*req.TimeSlot) {
		return Window{}, invalidField("time_slot", "must be one of MORNING, EVENING, NIGHT")
	}
	day := dateOnly(*req.BookingDate)
	return Window{Start: day, End: day.Add(24 * time.Hour), Slot: req.TimeSlot}, nil
}

func (p slotPolicy) Price(res *models.Resource, req *BookingRequest) float64 {
	return unitPrice(res, req.PricingType)
}

func (p slotPolicy) CheckCapacity(res *models.Resource, req *BookingRequest) error {
	if res.MinGuests > 0 && req.GuestCount < res.MinGuests {
		return invalidField("guest_count", "%s requires at least %d guests", p.kind, res.MinGuests)
	}
	if res.MaxGuests > 0 && req.GuestCount > res.MaxGuests {
		return invalidField("guest_count", "%s holds at most %d guests, got %d", p.kind, res.MaxGuests, req.GuestCount)
	}
	return nil
}

// photoshootPolicy: same-day hourly slots priced per started hour.
type photoshootPolicy struct{}

func (photoshootPolicy) Kind() models.ResourceKind { return models.KindPhotoshoot }

func (photoshootPolicy) Window(req *BookingRequest) (Window, error) {
	if req.StartTime == nil || req.EndTime == nil {
		return Window{}, invalidField("start_time", "start_time and end_time are required for PHOTOSHOOT bookings")
	}
	st := req.StartTime.UTC()
	et := req.EndTime.UTC()
	if !et.After(st) {
		return Window{}, invalidField("end_time", "must be after start_time")
	}
	if !dateOnly(st).Equal(dateOnly(et)) {
		return Window{}, invalidField("end_time", "photoshoot slots must start and end on the same day")
	}
	return Window{Start: st, End: et}, nil
}

func (p photoshootPolicy) Price(res *models.Resource, req *BookingRequest) float64 {
	w, err := p.Window(req)
	if err != nil {
		return 0
	}
	hours := math.Ceil(w.End.Sub(w.Start).Hours())
	if hours < 1 {
		hours = 1
	}
	return hours * unitPrice(res, req.PricingType)
}

func (photoshootPolicy) CheckCapacity(res *models.Resource, req *BookingRequest) error {
	if res.MaxGuests > 0 && req.GuestCount > res.MaxGuests {
		return invalidField("guest_count", "slot holds at most %d people, got %d", res.MaxGuests, req.GuestCount)
	}
	return nil
}
