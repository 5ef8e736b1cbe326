package services

import (
	"testing"
	"time"

	"club-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceHold(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoldService(db)
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	held, err := svc.Place(res.ID, "M-001", 0)
	require.NoError(t, err)
	assert.True(t, held.OnHold)
	assert.Equal(t, "M-001", held.HoldBy)
	require.NotNil(t, held.HoldExpiry)
	assert.WithinDuration(t, time.Now().UTC().Add(DefaultHoldTTL), *held.HoldExpiry, 5*time.Second)
}

func TestPlaceHoldForeignUnexpiredWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoldService(db)
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	_, err := svc.Place(res.ID, "M-001", 10*time.Minute)
	require.NoError(t, err)

	_, err = svc.Place(res.ID, "M-002", 10*time.Minute)
	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, ConflictOnHold, ce.Reason)

	// The holder can extend its own hold.
	_, err = svc.Place(res.ID, "M-001", 20*time.Minute)
	assert.NoError(t, err)
}

func TestPlaceHoldOverwritesExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoldService(db)
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	expired := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, db.Model(res).Updates(map[string]interface{}{
		"on_hold": true, "hold_by": "M-001", "hold_expiry": expired,
	}).Error)

	held, err := svc.Place(res.ID, "M-002", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "M-002", held.HoldBy)
}

func TestPlaceHoldInactiveResource(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoldService(db)
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)
	require.NoError(t, db.Model(res).Update("active", false).Error)

	_, err := svc.Place(res.ID, "M-001", 0)
	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, ConflictResourceInactive, ce.Reason)
}

func TestReleaseHold(t *testing.T) {
	db := newTestDB(t)
	svc := NewHoldService(db)
	res := seedResource(t, db, models.KindRoom, "Room 101", 1000)

	_, err := svc.Place(res.ID, "M-001", 10*time.Minute)
	require.NoError(t, err)

	// Foreign release is refused while the hold is live.
	err = svc.Release(res.ID, "M-002")
	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, ConflictOnHold, ce.Reason)

	require.NoError(t, svc.Release(res.ID, "M-001"))

	var r models.Resource
	require.NoError(t, db.First(&r, res.ID).Error)
	assert.False(t, r.OnHold)
	assert.Empty(t, r.HoldBy)
	assert.Nil(t, r.HoldExpiry)

	// Releasing an unheld resource is a no-op.
	assert.NoError(t, svc.Release(res.ID, "M-001"))
}
