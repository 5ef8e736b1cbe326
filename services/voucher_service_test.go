package services

import (
	"strings"
	"testing"

	"club-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVoucher(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(db)

	v, err := svc.Issue(db, 1, models.VoucherHalfPayment, 400, "", "frontdesk", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.VoucherNo, "PV-"))
	assert.Equal(t, models.ModeCash, v.PaymentMode)
	assert.Equal(t, models.VoucherConfirmed, v.Status)
	assert.Equal(t, 400.0, v.Amount)
}

func TestSupersedeKeepsOneActiveVoucher(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(db)

	_, err := svc.Issue(db, 1, models.VoucherHalfPayment, 400, models.ModeCash, "frontdesk", "")
	require.NoError(t, err)

	replacement, err := svc.Supersede(db, 1, models.VoucherFullPayment, 1000, models.ModeOnline, "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, models.VoucherConfirmed, replacement.Status)

	list, err := svc.ListByBooking(1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	active := 0
	for _, v := range list {
		if v.Status == models.VoucherConfirmed {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestCancelActiveLeavesRefundsAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(db)

	_, err := svc.Issue(db, 1, models.VoucherFullPayment, 1000, models.ModeCash, "frontdesk", "")
	require.NoError(t, err)
	refund, err := svc.IssueRefund(db, 1, 200, models.ModeCash, "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, models.VoucherPending, refund.Status)

	require.NoError(t, svc.CancelActive(db, 1))

	list, err := svc.ListByBooking(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, v := range list {
		if v.VoucherType == models.VoucherRefund {
			assert.Equal(t, models.VoucherPending, v.Status)
		} else {
			assert.Equal(t, models.VoucherCancelled, v.Status)
		}
	}
}

func TestVouchersScopedPerBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(db)

	_, err := svc.Issue(db, 1, models.VoucherFullPayment, 1000, models.ModeCash, "", "")
	require.NoError(t, err)
	_, err = svc.Issue(db, 2, models.VoucherHalfPayment, 300, models.ModeCash, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.CancelActive(db, 1))

	other, err := svc.ListByBooking(2)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, models.VoucherConfirmed, other[0].Status)
}
