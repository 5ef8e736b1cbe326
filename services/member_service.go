package services

import (
	"errors"
	"fmt"
	"strings"

	"club-backend/models"

	"gorm.io/gorm"
)

type MemberService struct {
	DB *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{DB: db}
}

func (s *MemberService) Create(m *models.Member) error {
	m.MembershipNo = strings.TrimSpace(m.MembershipNo)
	if m.MembershipNo == "" {
		return invalidField("membership_no", "required")
	}
	if strings.TrimSpace(m.FullName) == "" {
		return invalidField("full_name", "required")
	}
	m.Active = true
	if err := s.DB.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *MemberService) FindByMembershipNo(membershipNo string) (*models.Member, error) {
	var m models.Member
	if err := s.DB.Where("membership_no = ?", membershipNo).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("db error looking up member: %w", err)
	}
	return &m, nil
}

func (s *MemberService) Get(id uint) (*models.Member, error) {
	var m models.Member
	if err := s.DB.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *MemberService) List() ([]models.Member, error) {
	var list []models.Member
	if err := s.DB.Order("membership_no ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return list, nil
}
