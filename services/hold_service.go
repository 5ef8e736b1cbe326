package services

import (
	"errors"
	"fmt"
	"time"

	"club-backend/models"

	"gorm.io/gorm"
)

// DefaultHoldTTL bounds how long a checkout hold blocks other actors.
const DefaultHoldTTL = 15 * time.Minute

// HoldService places and releases checkout holds. Expiry is wall-clock
// and evaluated lazily by readers; nothing actively reaps expired holds.
type HoldService struct {
	DB *gorm.DB
}

func NewHoldService(db *gorm.DB) *HoldService {
	return &HoldService{DB: db}
}

// Place puts a hold on the resource for actor. An unexpired hold by a
// different actor wins; an expired one is overwritten.
func (s *HoldService) Place(resourceID uint, actor string, ttl time.Duration) (*models.Resource, error) {
	if actor == "" {
		return nil, invalidField("actor", "required")
	}
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}

	var resource models.Resource
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&resource, resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		if !resource.Active {
			return conflictf(ConflictResourceInactive, "resource %q is not active", resource.Name)
		}

		now := time.Now().UTC()
		if resource.OnHold && resource.HoldExpiry != nil && resource.HoldExpiry.After(now) && resource.HoldBy != actor {
			return &ConflictError{
				Reason:  ConflictOnHold,
				Message: fmt.Sprintf("resource %q is held by another party until %s", resource.Name, resource.HoldExpiry.Format(time.RFC3339)),
				To:      resource.HoldExpiry,
			}
		}

		expiry := now.Add(ttl)
		resource.OnHold = true
		resource.HoldBy = actor
		resource.HoldExpiry = &expiry
		return tx.Save(&resource).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &resource, nil
}

// Release drops the actor's own hold. Releasing someone else's hold is a
// conflict; releasing nothing is a no-op.
func (s *HoldService) Release(resourceID uint, actor string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var resource models.Resource
		if err := lockForUpdate(tx).First(&resource, resourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		if !resource.OnHold {
			return nil
		}
		now := time.Now().UTC()
		held := resource.HoldExpiry != nil && resource.HoldExpiry.After(now)
		if held && resource.HoldBy != actor {
			return conflictf(ConflictOnHold, "hold belongs to another party")
		}
		return tx.Model(&models.Resource{}).
			Where("id = ?", resource.ID).
			Updates(map[string]interface{}{"on_hold": false, "hold_by": "", "hold_expiry": nil}).Error
	})
}
