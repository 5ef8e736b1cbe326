package services

import (
	"errors"
	"fmt"
	"strings"

	"club-backend/models"

	"gorm.io/gorm"
)

// ResourceService is the catalog side: resources, maintenance windows and
// standing reservations. The booking core only reads these.
type ResourceService struct {
	DB *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{DB: db}
}

func (s *ResourceService) Create(r *models.Resource) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return invalidField("name", "required")
	}
	if _, err := PolicyFor(r.Kind); err != nil {
		return err
	}
	r.Active = true
	if err := s.DB.Create(r).Error; err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

func (s *ResourceService) Get(id uint) (*models.Resource, error) {
	var r models.Resource
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *ResourceService) List(kind models.ResourceKind) ([]models.Resource, error) {
	q := s.DB.Order("kind, name")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var list []models.Resource
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return list, nil
}

func (s *ResourceService) Update(id uint, updates map[string]interface{}) error {
	// Identity and hold state are not editable through catalog updates.
	for _, k := range []string{"id", "created_at", "updated_at", "deleted_at", "kind", "on_hold", "hold_by", "hold_expiry"} {
		delete(updates, k)
	}
	res := s.DB.Model(&models.Resource{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update resource: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func (s *ResourceService) SetActive(id uint, active bool) error {
	res := s.DB.Model(&models.Resource{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func (s *ResourceService) AddMaintenance(mw *models.MaintenanceWindow) error {
	if !mw.EndDate.After(mw.StartDate) {
		return invalidField("end_date", "must be after start_date")
	}
	var r models.Resource
	if err := s.DB.First(&r, mw.ResourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	if err := s.DB.Create(mw).Error; err != nil {
		return fmt.Errorf("failed to create maintenance window: %w", err)
	}
	return nil
}

func (s *ResourceService) AddReservation(sr *models.StandingReservation) error {
	if !sr.ReservedTo.After(sr.ReservedFrom) {
		return invalidField("reserved_to", "must be after reserved_from")
	}
	if sr.TimeSlot != nil && !models.ValidTimeSlot(*sr.TimeSlot) {
		return invalidField("time_slot", "must be one of MORNING, EVENING, NIGHT")
	}
	var r models.Resource
	if err := s.DB.First(&r, sr.ResourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	if err := s.DB.Create(sr).Error; err != nil {
		return fmt.Errorf("failed to create standing reservation: %w", err)
	}
	return nil
}

func (s *ResourceService) ListMaintenance(resourceID uint) ([]models.MaintenanceWindow, error) {
	var list []models.MaintenanceWindow
	if err := s.DB.Where("resource_id = ?", resourceID).Order("start_date").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ResourceService) ListReservations(resourceID uint) ([]models.StandingReservation, error) {
	var list []models.StandingReservation
	if err := s.DB.Where("resource_id = ?", resourceID).Order("reserved_from").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
