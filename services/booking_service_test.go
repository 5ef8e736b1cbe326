package services

import (
	"sync"
	"testing"

	"club-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomRequest(membershipNo string, resourceID uint) *BookingRequest {
	return &BookingRequest{
		MembershipNo:  membershipNo,
		Kind:          models.KindRoom,
		ResourceID:    resourceID,
		CheckIn:       dayPtr(2026, 9, 1),
		CheckOut:      dayPtr(2026, 9, 3),
		PaymentStatus: models.StatusUnpaid,
	}
}

func TestCreateRoomBookingHalfPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	member := seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusHalfPaid
	req.PaidAmount = 400
	req.TotalPrice = 1000

	receipt, err := svc.Create(req)
	require.NoError(t, err)

	b := receipt.Booking
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.NotEmpty(t, b.ReferenceCode)
	assert.Equal(t, 1000.0, b.TotalPrice)
	assert.Equal(t, 400.0, b.PaidAmount)
	assert.Equal(t, 600.0, b.PendingAmount)
	assert.Equal(t, models.StatusHalfPaid, b.PaymentStatus)

	require.Len(t, receipt.Vouchers, 1)
	v := receipt.Vouchers[0]
	assert.Equal(t, models.VoucherHalfPayment, v.VoucherType)
	assert.Equal(t, 400.0, v.Amount)
	assert.Equal(t, models.VoucherConfirmed, v.Status)

	var m models.Member
	require.NoError(t, db.First(&m, member.ID).Error)
	assert.Equal(t, 1, m.TotalBookings)
	assert.Equal(t, 400.0, m.BookingAmountPaid)
	assert.Equal(t, 600.0, m.BookingAmountDue)
	assert.Equal(t, -200.0, m.BookingBalance)
	assert.NotNil(t, m.LastBookingDate)
}

func TestCreateComputesPriceFromPolicy(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)

	receipt, err := svc.Create(req)
	require.NoError(t, err)
	// Two nights at the member rate.
	assert.Equal(t, 2000.0, receipt.Booking.TotalPrice)
	assert.Equal(t, 2000.0, receipt.Booking.PendingAmount)
}

func TestCreatePaidIssuesFullVoucher(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusPaid

	receipt, err := svc.Create(req)
	require.NoError(t, err)
	require.Len(t, receipt.Vouchers, 1)
	assert.Equal(t, models.VoucherFullPayment, receipt.Vouchers[0].VoucherType)
	assert.Equal(t, 2000.0, receipt.Vouchers[0].Amount)
}

func TestCreateToBillSpillsToMemberBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	member := seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusToBill
	req.PaidAmount = 200
	req.TotalPrice = 1000

	receipt, err := svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, receipt.Booking.PendingAmount)
	assert.Equal(t, models.StatusToBill, receipt.Booking.PaymentStatus)

	var m models.Member
	require.NoError(t, db.First(&m, member.ID).Error)
	assert.Equal(t, 200.0, m.BookingAmountPaid)
	assert.Equal(t, 0.0, m.BookingAmountDue)
	assert.Equal(t, 800.0, m.Balance)
	assert.Equal(t, 800.0, m.DrAmount)
}

func TestCreateRejectsDoubleBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	seedMember(t, db, "M-002")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	_, err := svc.Create(roomRequest("M-001", res.ID))
	require.NoError(t, err)

	_, err = svc.Create(roomRequest("M-002", res.ID))
	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, ConflictAlreadyBooked, ce.Reason)

	// A rejected booking leaves the member ledger untouched.
	var m models.Member
	require.NoError(t, db.Where("membership_no = ?", "M-002").First(&m).Error)
	assert.Equal(t, 0, m.TotalBookings)
	assert.Equal(t, 0.0, m.BookingAmountDue)
}

func TestCreateUnknownMemberAndResource(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	_, err := svc.Create(roomRequest("M-404", res.ID))
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = svc.Create(roomRequest("M-001", res.ID+99))
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestCreateGuestPayerRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaidBy = "GUEST"

	_, err := svc.Create(req)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "guest_name", ve.Field)
}

func TestCreateConsumesOwnHold(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	holds := NewHoldService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	_, err := holds.Place(res.ID, "M-001", 0)
	require.NoError(t, err)

	req := roomRequest("M-001", res.ID)
	req.Actor = "M-001"
	_, err = svc.Create(req)
	require.NoError(t, err)

	var r models.Resource
	require.NoError(t, db.First(&r, res.ID).Error)
	assert.False(t, r.OnHold)
	assert.Empty(t, r.HoldBy)
}

func TestCreateBlockedByForeignHold(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	holds := NewHoldService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	_, err := holds.Place(res.ID, "M-OTHER", 0)
	require.NoError(t, err)

	req := roomRequest("M-001", res.ID)
	req.Actor = "M-001"
	_, err = svc.Create(req)
	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, ConflictOnHold, ce.Reason)
}

func TestUpdateIncreaseWhilePaidConvertsToHalfPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	member := seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusPaid
	req.TotalPrice = 1000
	created, err := svc.Create(req)
	require.NoError(t, err)

	receipt, err := svc.Update(created.Booking.ID, &UpdateRequest{TotalPrice: floatPtr(1500)})
	require.NoError(t, err)

	b := receipt.Booking
	assert.Equal(t, 1500.0, b.TotalPrice)
	assert.Equal(t, 1000.0, b.PaidAmount)
	assert.Equal(t, 500.0, b.PendingAmount)
	assert.Equal(t, models.StatusHalfPaid, b.PaymentStatus)

	vouchers, err := svc.Vouchers.ListByBooking(b.ID)
	require.NoError(t, err)
	require.Len(t, vouchers, 2)
	// Newest first: the replacement HALF voucher, then the cancelled FULL.
	assert.Equal(t, models.VoucherHalfPayment, vouchers[0].VoucherType)
	assert.Equal(t, 1000.0, vouchers[0].Amount)
	assert.Equal(t, models.VoucherConfirmed, vouchers[0].Status)
	assert.Equal(t, models.VoucherFullPayment, vouchers[1].VoucherType)
	assert.Equal(t, models.VoucherCancelled, vouchers[1].Status)

	var m models.Member
	require.NoError(t, db.First(&m, member.ID).Error)
	assert.Equal(t, 1000.0, m.BookingAmountPaid)
	assert.Equal(t, 500.0, m.BookingAmountDue)
	assert.Equal(t, 500.0, m.BookingBalance)
}

func TestUpdateCompletionIssuesFullVoucherForRemainder(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	member := seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusHalfPaid
	req.PaidAmount = 400
	req.TotalPrice = 1000
	created, err := svc.Create(req)
	require.NoError(t, err)

	receipt, err := svc.Update(created.Booking.ID, &UpdateRequest{PaymentStatus: statusPtr(models.StatusPaid)})
	require.NoError(t, err)

	b := receipt.Booking
	assert.Equal(t, 1000.0, b.PaidAmount)
	assert.Equal(t, 0.0, b.PendingAmount)
	assert.Equal(t, models.StatusPaid, b.PaymentStatus)

	require.Len(t, receipt.Vouchers, 1)
	assert.Equal(t, models.VoucherFullPayment, receipt.Vouchers[0].VoucherType)
	assert.Equal(t, 600.0, receipt.Vouchers[0].Amount)

	var m models.Member
	require.NoError(t, db.First(&m, member.ID).Error)
	assert.Equal(t, 1000.0, m.BookingAmountPaid)
	assert.Equal(t, 0.0, m.BookingAmountDue)
	assert.Equal(t, 1000.0, m.BookingBalance)
}

func TestUpdateChargeDropBelowPaidIssuesPendingRefund(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	member := seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusPaid
	req.TotalPrice = 1000
	created, err := svc.Create(req)
	require.NoError(t, err)

	receipt, err := svc.Update(created.Booking.ID, &UpdateRequest{TotalPrice: floatPtr(800)})
	require.NoError(t, err)

	b := receipt.Booking
	assert.Equal(t, 800.0, b.TotalPrice)
	assert.Equal(t, 800.0, b.PaidAmount)
	assert.Equal(t, 0.0, b.PendingAmount)
	assert.Equal(t, 200.0, b.RefundAmount)
	assert.Equal(t, models.StatusPaid, b.PaymentStatus)

	require.Len(t, receipt.Vouchers, 2)
	assert.Equal(t, models.VoucherFullPayment, receipt.Vouchers[0].VoucherType)
	assert.Equal(t, 800.0, receipt.Vouchers[0].Amount)
	assert.Equal(t, models.VoucherRefund, receipt.Vouchers[1].VoucherType)
	assert.Equal(t, 200.0, receipt.Vouchers[1].Amount)
	// Refunds stay pending until paid out.
	assert.Equal(t, models.VoucherPending, receipt.Vouchers[1].Status)

	var m models.Member
	require.NoError(t, db.First(&m, member.ID).Error)
	assert.Equal(t, 1000.0, m.BookingAmountPaid)
	assert.Equal(t, 200.0, m.BookingAmountDue)
	assert.Equal(t, 800.0, m.BookingBalance)
}

func TestUpdateWindowMoveChecksAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	seedMember(t, db, "M-002")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	first, err := svc.Create(roomRequest("M-001", res.ID))
	require.NoError(t, err)

	second := roomRequest("M-002", res.ID)
	second.CheckIn = dayPtr(2026, 9, 10)
	second.CheckOut = dayPtr(2026, 9, 12)
	other, err := svc.Create(second)
	require.NoError(t, err)

	// Moving onto the first booking's window fails.
	_, err = svc.Update(other.Booking.ID, &UpdateRequest{
		CheckIn:  dayPtr(2026, 9, 2),
		CheckOut: dayPtr(2026, 9, 4),
	})
	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, ConflictAlreadyBooked, ce.Reason)

	// Moving to a free window succeeds, and moving within its own window
	// does not conflict with itself.
	receipt, err := svc.Update(first.Booking.ID, &UpdateRequest{
		CheckIn:  dayPtr(2026, 9, 2),
		CheckOut: dayPtr(2026, 9, 4),
	})
	require.NoError(t, err)
	require.NotNil(t, receipt.Booking.CheckIn)
	assert.True(t, receipt.Booking.CheckIn.Equal(day(2026, 9, 2)))
}

func TestUpdateCancelledBookingFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	created, err := svc.Create(roomRequest("M-001", res.ID))
	require.NoError(t, err)
	_, err = svc.Cancel(created.Booking.ID)
	require.NoError(t, err)

	_, err = svc.Update(created.Booking.ID, &UpdateRequest{TotalPrice: floatPtr(500)})
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestCancelReleasesWindowKeepsVouchers(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	seedMember(t, db, "M-002")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	req := roomRequest("M-001", res.ID)
	req.PaymentStatus = models.StatusPaid
	created, err := svc.Create(req)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	_, err = svc.Cancel(created.Booking.ID)
	assert.ErrorIs(t, err, ErrBookingCancelled)

	// Voucher history survives as audit trail.
	vouchers, err := svc.Vouchers.ListByBooking(created.Booking.ID)
	require.NoError(t, err)
	require.Len(t, vouchers, 1)
	assert.Equal(t, models.VoucherConfirmed, vouchers[0].Status)

	// The window is free again.
	_, err = svc.Create(roomRequest("M-002", res.ID))
	assert.NoError(t, err)
}

func TestConcurrentCreatesNeverDoubleBook(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	seedMember(t, db, "M-001")
	seedMember(t, db, "M-002")
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, no := range []string{"M-001", "M-002"} {
		wg.Add(1)
		go func(i int, no string) {
			defer wg.Done()
			_, errs[i] = svc.Create(roomRequest(no, res.ID))
		}(i, no)
	}
	wg.Wait()

	var confirmed int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("resource_id = ? AND status = ?", res.ID, models.BookingConfirmed).
		Count(&confirmed).Error)
	assert.LessOrEqual(t, confirmed, int64(1))

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, int64(succeeded), confirmed)
}

func TestGetAndListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	m1 := seedMember(t, db, "M-001")
	seedMember(t, db, "M-002")
	room := seedResource(t, db, models.KindRoom, "Room 101", 1000)
	hall := seedResource(t, db, models.KindHall, "Banquet Hall", 5000)

	_, err := svc.Create(roomRequest("M-001", room.ID))
	require.NoError(t, err)

	hallReq := &BookingRequest{
		MembershipNo:  "M-002",
		Kind:          models.KindHall,
		ResourceID:    hall.ID,
		BookingDate:   dayPtr(2026, 9, 10),
		TimeSlot:      slotPtr(models.SlotEvening),
		PaymentStatus: models.StatusUnpaid,
	}
	_, err = svc.Create(hallReq)
	require.NoError(t, err)

	all, err := svc.List("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rooms, err := svc.List(models.KindRoom, 0)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, models.KindRoom, rooms[0].Kind)

	mine, err := svc.List("", m1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, m1.ID, mine[0].MemberID)

	got, err := svc.Get(rooms[0].ID)
	require.NoError(t, err)
	assert.Equal(t, rooms[0].ReferenceCode, got.ReferenceCode)

	_, err = svc.Get(9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
