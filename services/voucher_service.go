package services

import (
	"fmt"
	"strings"

	"club-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoucherService keeps the append-only payment audit trail per booking.
// Vouchers are soft-cancelled, never deleted.
type VoucherService struct {
	DB *gorm.DB
}

func NewVoucherService(db *gorm.DB) *VoucherService {
	return &VoucherService{DB: db}
}

func newVoucherNo() string {
	return "PV-" + strings.ToUpper(uuid.NewString()[:8])
}

// Issue writes a CONFIRMED FULL/HALF payment voucher.
func (s *VoucherService) Issue(tx *gorm.DB, bookingID uint, vtype models.VoucherType, amount float64, mode models.PaymentMode, issuedBy, remarks string) (*models.PaymentVoucher, error) {
	if mode == "" {
		mode = models.ModeCash
	}
	v := models.PaymentVoucher{
		BookingID:   bookingID,
		VoucherNo:   newVoucherNo(),
		Amount:      amount,
		PaymentMode: mode,
		VoucherType: vtype,
		Status:      models.VoucherConfirmed,
		Remarks:     remarks,
		IssuedBy:    issuedBy,
	}
	if err := tx.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	return &v, nil
}

// CancelActive marks every non-cancelled FULL/HALF voucher of the booking
// CANCELLED. Refund vouchers are left alone.
func (s *VoucherService) CancelActive(tx *gorm.DB, bookingID uint) error {
	return tx.Model(&models.PaymentVoucher{}).
		Where("booking_id = ? AND status <> ? AND voucher_type IN ?",
			bookingID, models.VoucherCancelled,
			[]models.VoucherType{models.VoucherFullPayment, models.VoucherHalfPayment}).
		Update("status", models.VoucherCancelled).Error
}

// Supersede cancels the booking's active FULL/HALF vouchers and issues a
// replacement, preserving the one-active-voucher invariant.
func (s *VoucherService) Supersede(tx *gorm.DB, bookingID uint, vtype models.VoucherType, amount float64, mode models.PaymentMode, issuedBy string) (*models.PaymentVoucher, error) {
	if err := s.CancelActive(tx, bookingID); err != nil {
		return nil, fmt.Errorf("failed to cancel prior vouchers: %w", err)
	}
	return s.Issue(tx, bookingID, vtype, amount, mode, issuedBy, "superseded prior voucher")
}

// IssueRefund records a refund owed back to the member. It starts PENDING
// and is never auto-confirmed; payout confirmation is an external process.
func (s *VoucherService) IssueRefund(tx *gorm.DB, bookingID uint, amount float64, mode models.PaymentMode, issuedBy string) (*models.PaymentVoucher, error) {
	if mode == "" {
		mode = models.ModeCash
	}
	v := models.PaymentVoucher{
		BookingID:   bookingID,
		VoucherNo:   newVoucherNo(),
		Amount:      amount,
		PaymentMode: mode,
		VoucherType: models.VoucherRefund,
		Status:      models.VoucherPending,
		Remarks:     "refund on charge adjustment",
		IssuedBy:    issuedBy,
	}
	if err := tx.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to create refund voucher: %w", err)
	}
	return &v, nil
}

// ListByBooking returns the full voucher history, newest first.
func (s *VoucherService) ListByBooking(bookingID uint) ([]models.PaymentVoucher, error) {
	var list []models.PaymentVoucher
	if err := s.DB.
		Where("booking_id = ?", bookingID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return list, nil
}
