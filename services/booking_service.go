package services

import (
	"errors"
	"fmt"
	"time"

	"club-backend/models"
	"club-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService composes availability checking, payment allocation,
// reconciliation, vouchers and the member ledger into create/update/
// cancel operations. Every operation runs in one transaction: either the
// booking, its vouchers and the ledger delta all land, or none do.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Vouchers     *VoucherService
	Ledger       *LedgerService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		DB:           db,
		Availability: NewAvailabilityService(db),
		Vouchers:     NewVoucherService(db),
		Ledger:       NewLedgerService(db),
	}
}

// BookingRequest is the normalized create input, validated at the
// controller boundary. Window fields are kind-specific.
type BookingRequest struct {
	MembershipNo string
	Kind         models.ResourceKind
	ResourceID   uint

	CheckIn     *time.Time
	CheckOut    *time.Time
	BookingDate *time.Time
	TimeSlot    *models.TimeSlot
	StartTime   *time.Time
	EndTime     *time.Time

	PricingType   models.PricingType
	TotalPrice    float64
	PaymentStatus models.PaymentStatus
	PaidAmount    float64
	PaymentMode   models.PaymentMode

	PaidBy       string
	GuestName    string
	GuestContact string

	GuestCount      int
	Adults          int
	Children        int
	SpecialRequests string

	Actor    string
	IssuedBy string
}

// UpdateRequest carries only the fields being edited; nil means keep.
type UpdateRequest struct {
	TotalPrice    *float64
	PaymentStatus *models.PaymentStatus
	PaidAmount    *float64
	PaymentMode   models.PaymentMode

	CheckIn     *time.Time
	CheckOut    *time.Time
	BookingDate *time.Time
	TimeSlot    *models.TimeSlot
	StartTime   *time.Time
	EndTime     *time.Time

	GuestCount      *int
	SpecialRequests *string

	Actor    string
	IssuedBy string
}

// BookingReceipt is the composite result of a create or update: the
// persisted booking, the vouchers written by this operation, and the
// ledger delta as applied (rounded).
type BookingReceipt struct {
	Booking  models.Booking          `json:"booking"`
	Vouchers []models.PaymentVoucher `json:"vouchers"`
	Ledger   LedgerDelta             `json:"ledger"`
}

// lockForUpdate takes a row lock on backends that support it. SQLite has
// no row locks; its writers serialize on the database lock instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create books a resource. The resource row is locked before the
// availability check so two concurrent creates for the same resource
// serialize instead of both passing the check.
func (s *BookingService) Create(req *BookingRequest) (*BookingReceipt, error) {
	policy, err := PolicyFor(req.Kind)
	if err != nil {
		return nil, err
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		return nil, invalidField("payment_status", "unknown status %q", req.PaymentStatus)
	}
	if req.PaidBy == string(models.PricingGuest) && req.GuestName == "" {
		return nil, invalidField("guest_name", "required when paid_by is GUEST")
	}
	if req.Adults <= 0 {
		req.Adults = 1
	}
	if req.Actor == "" {
		req.Actor = req.MembershipNo
	}

	var member models.Member
	if err := s.DB.Where("membership_no = ?", req.MembershipNo).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("db error looking up member: %w", err)
	}

	var receipt *BookingReceipt

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var resource models.Resource
		if err := lockForUpdate(tx).
			Where("id = ? AND kind = ?", req.ResourceID, req.Kind).
			First(&resource).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResourceNotFound
			}
			return err
		}

		w, err := policy.Window(req)
		if err != nil {
			return err
		}
		if err := policy.CheckCapacity(&resource, req); err != nil {
			return err
		}

		total := req.TotalPrice
		if total == 0 {
			total = policy.Price(&resource, req)
		}
		if total <= 0 {
			return invalidField("total_price", "must be greater than zero")
		}

		if err := s.Availability.Check(tx, &resource, w, req.Actor, 0); err != nil {
			return err
		}

		alloc, err := Allocate(total, req.PaymentStatus, req.PaidAmount)
		if err != nil {
			return err
		}

		booking := models.Booking{
			ReferenceCode: utils.NewReferenceCode(),
			Kind:          req.Kind,
			ResourceID:    resource.ID,
			MemberID:      member.ID,
			Status:        models.BookingConfirmed,

			PricingType:   req.PricingType,
			TotalPrice:    total,
			PaymentStatus: req.PaymentStatus,
			PaidAmount:    alloc.Paid,
			PendingAmount: alloc.Owed,

			PaidBy:       req.PaidBy,
			GuestName:    req.GuestName,
			GuestContact: req.GuestContact,

			GuestCount:      req.GuestCount,
			Adults:          req.Adults,
			Children:        req.Children,
			SpecialRequests: req.SpecialRequests,
		}
		if booking.PricingType == "" {
			booking.PricingType = models.PricingMember
		}
		if booking.PaidBy == "" {
			booking.PaidBy = "MEMBER"
		}
		applyWindow(&booking, req.Kind, w)

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		vouchers := make([]models.PaymentVoucher, 0, 1)
		switch {
		case req.PaymentStatus == models.StatusPaid:
			v, err := s.Vouchers.Issue(tx, booking.ID, models.VoucherFullPayment, total, req.PaymentMode, req.IssuedBy, "")
			if err != nil {
				return err
			}
			vouchers = append(vouchers, *v)
		case alloc.Paid > 0:
			v, err := s.Vouchers.Issue(tx, booking.ID, models.VoucherHalfPayment, alloc.Paid, req.PaymentMode, req.IssuedBy, "")
			if err != nil {
				return err
			}
			vouchers = append(vouchers, *v)
		}

		delta := LedgerDelta{Paid: alloc.Paid, Owed: alloc.Owed, Balance: alloc.Deferred, NewBooking: true}
		if err := s.Ledger.Apply(tx, member.ID, delta); err != nil {
			return err
		}

		// A hold placed by this actor during checkout is consumed by the
		// booking it protected.
		if resource.OnHold && resource.HoldBy == req.Actor {
			if err := tx.Model(&models.Resource{}).
				Where("id = ?", resource.ID).
				Updates(map[string]interface{}{"on_hold": false, "hold_by": "", "hold_expiry": nil}).Error; err != nil {
				return fmt.Errorf("failed to consume hold: %w", err)
			}
		}

		receipt = &BookingReceipt{Booking: booking, Vouchers: vouchers, Ledger: delta.Rounded()}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.reloadBooking(&receipt.Booking, receipt.Booking.ID); err != nil {
		return nil, err
	}
	return receipt, nil
}

// Update edits a booking: optional window move (re-checked against
// availability) plus charge/payment reconciliation per the scenario
// matrix in Reconcile.
func (s *BookingService) Update(bookingID uint, req *UpdateRequest) (*BookingReceipt, error) {
	var receipt *BookingReceipt

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status == models.BookingCancelled {
			return ErrBookingCancelled
		}

		var resource models.Resource
		if err := lockForUpdate(tx).First(&resource, booking.ResourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResourceNotFound
			}
			return err
		}

		policy, err := PolicyFor(booking.Kind)
		if err != nil {
			return err
		}

		if windowChanged(req) {
			breq := windowRequest(&booking, req)
			w, err := policy.Window(breq)
			if err != nil {
				return err
			}
			actor := req.Actor
			if actor == "" {
				actor = fmt.Sprintf("booking:%d", booking.ID)
			}
			if err := s.Availability.Check(tx, &resource, w, actor, booking.ID); err != nil {
				return err
			}
			applyWindow(&booking, booking.Kind, w)
		}

		newTotal := booking.TotalPrice
		if req.TotalPrice != nil {
			newTotal = *req.TotalPrice
		}
		requestedPaid := booking.PaidAmount
		if req.PaidAmount != nil {
			requestedPaid = *req.PaidAmount
		}

		old := BookingFinancials{
			Total:   booking.TotalPrice,
			Paid:    booking.PaidAmount,
			Pending: booking.PendingAmount,
			Status:  booking.PaymentStatus,
		}
		res, err := Reconcile(old, ChangeRequest{
			NewTotal:      newTotal,
			Status:        req.PaymentStatus,
			RequestedPaid: requestedPaid,
		})
		if err != nil {
			return err
		}

		vouchers := make([]models.PaymentVoucher, 0, 2)
		if res.SupersedeVouchers {
			if err := s.Vouchers.CancelActive(tx, booking.ID); err != nil {
				return err
			}
		}
		if res.Issue != nil {
			v, err := s.Vouchers.Issue(tx, booking.ID, res.Issue.Type, res.Issue.Amount, req.PaymentMode, req.IssuedBy, "")
			if err != nil {
				return err
			}
			vouchers = append(vouchers, *v)
		}
		if res.RefundVoucher != nil {
			v, err := s.Vouchers.IssueRefund(tx, booking.ID, res.RefundVoucher.Amount, req.PaymentMode, req.IssuedBy)
			if err != nil {
				return err
			}
			vouchers = append(vouchers, *v)
		}

		booking.TotalPrice = res.Total
		booking.PaidAmount = res.Paid
		booking.PendingAmount = res.Pending
		booking.PaymentStatus = res.Status
		booking.RefundAmount += res.Refund
		if req.GuestCount != nil {
			booking.GuestCount = *req.GuestCount
		}
		if req.SpecialRequests != nil {
			booking.SpecialRequests = *req.SpecialRequests
		}
		if err := tx.Save(&booking).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		delta := LedgerDelta{Paid: res.PaidDiff, Owed: res.OwedDiff, Balance: res.BalanceDelta}
		if err := s.Ledger.Apply(tx, booking.MemberID, delta); err != nil {
			return err
		}

		receipt = &BookingReceipt{Booking: booking, Vouchers: vouchers, Ledger: delta.Rounded()}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.reloadBooking(&receipt.Booking, bookingID); err != nil {
		return nil, err
	}
	return receipt, nil
}

// Cancel releases the booking's window. Vouchers stay as audit history;
// the ledger is not reversed.
func (s *BookingService) Cancel(bookingID uint) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status == models.BookingCancelled {
			return ErrBookingCancelled
		}
		booking.Status = models.BookingCancelled
		return tx.Save(&booking).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// Get returns one booking with its relations.
func (s *BookingService) Get(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.reloadBooking(&booking, bookingID); err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns bookings, optionally filtered by kind and member.
func (s *BookingService) List(kind models.ResourceKind, memberID uint) ([]models.Booking, error) {
	q := s.DB.Preload("Resource").Preload("Member").Order("created_at DESC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if memberID != 0 {
		q = q.Where("member_id = ?", memberID)
	}
	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) reloadBooking(dst *models.Booking, id uint) error {
	if err := s.DB.
		Preload("Resource").
		Preload("Member").
		Preload("Vouchers").
		First(dst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to reload booking: %w", err)
	}
	return nil
}

func applyWindow(b *models.Booking, kind models.ResourceKind, w Window) {
	switch kind {
	case models.KindRoom:
		start, end := w.Start, w.End
		b.CheckIn, b.CheckOut = &start, &end
	case models.KindPhotoshoot:
		start, end := w.Start, w.End
		b.StartTime, b.EndTime = &start, &end
	default:
		day := w.Start
		b.BookingDate = &day
		b.TimeSlot = w.Slot
	}
}

func windowChanged(req *UpdateRequest) bool {
	return req.CheckIn != nil || req.CheckOut != nil ||
		req.BookingDate != nil || req.TimeSlot != nil ||
		req.StartTime != nil || req.EndTime != nil
}

// windowRequest merges the booking's stored window with the edited
// fields so policies can validate the result as one shape.
func windowRequest(b *models.Booking, req *UpdateRequest) *BookingRequest {
	out := &BookingRequest{
		Kind:        b.Kind,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		BookingDate: b.BookingDate,
		TimeSlot:    b.TimeSlot,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		PricingType: b.PricingType,
		GuestCount:  b.GuestCount,
		Adults:      b.Adults,
		Children:    b.Children,
	}
	if req.CheckIn != nil {
		out.CheckIn = req.CheckIn
	}
	if req.CheckOut != nil {
		out.CheckOut = req.CheckOut
	}
	if req.BookingDate != nil {
		out.BookingDate = req.BookingDate
	}
	if req.TimeSlot != nil {
		out.TimeSlot = req.TimeSlot
	}
	if req.StartTime != nil {
		out.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		out.EndTime = req.EndTime
	}
	return out
}
