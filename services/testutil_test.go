package services

import (
	"testing"
	"time"

	"club-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/club.db?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Resource{},
		&models.MaintenanceWindow{},
		&models.StandingReservation{},
		&models.Booking{},
		&models.PaymentVoucher{},
	))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, membershipNo string) *models.Member {
	t.Helper()
	m := models.Member{MembershipNo: membershipNo, FullName: "Test Member", Active: true}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func seedResource(t *testing.T, db *gorm.DB, kind models.ResourceKind, name string, memberPrice float64) *models.Resource {
	t.Helper()
	r := models.Resource{
		Kind:        kind,
		Name:        name,
		Active:      true,
		MemberPrice: memberPrice,
		GuestPrice:  memberPrice * 1.5,
	}
	require.NoError(t, db.Create(&r).Error)
	return &r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func slotPtr(s models.TimeSlot) *models.TimeSlot {
	return &s
}

func statusPtr(s models.PaymentStatus) *models.PaymentStatus {
	return &s
}

func floatPtr(v float64) *float64 {
	return &v
}
