package service

import (
	"strings"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// StaffInput 员工创建/更新输入
type StaffInput struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

// StaffService 员工管理服务
type StaffService struct {
	staffRepo   repository.StaffRepository
	authService *AuthService
}

// NewStaffService 创建员工管理服务
func NewStaffService(staffRepo repository.StaffRepository, authService *AuthService) *StaffService {
	return &StaffService{staffRepo: staffRepo, authService: authService}
}

// List 员工列表
func (s *StaffService) List() ([]models.Staff, error) {
	return s.staffRepo.List()
}

// Create 创建员工账号
func (s *StaffService) Create(input StaffInput) (*models.Staff, error) {
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if !constants.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := s.authService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	staff := &models.Staff{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         role,
		IsActive:     true,
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Update 更新员工资料。密码留空则不变更。
func (s *StaffService) Update(id uint, input StaffInput) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrNotFound
	}

	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if !constants.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	staff.Role = role
	if username := strings.TrimSpace(input.Username); username != "" {
		staff.Username = username
	}
	if displayName := strings.TrimSpace(input.DisplayName); displayName != "" {
		staff.DisplayName = displayName
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}
	if input.Password != "" {
		if err := s.authService.ValidatePassword(input.Password); err != nil {
			return nil, err
		}
		hash, err := s.authService.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = hash
	}

	if err := s.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	return staff, nil
}
