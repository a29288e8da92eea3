package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// StaffRepository 员工数据访问接口
type StaffRepository interface {
	GetByID(id uint) (*models.Staff, error)
	GetByUsername(username string) (*models.Staff, error)
	List() ([]models.Staff, error)
	Create(staff *models.Staff) error
	Update(staff *models.Staff) error
	TouchLastLogin(id uint, at time.Time) error
	WithTx(tx *gorm.DB) StaffRepository
}

// GormStaffRepository GORM 实现
type GormStaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建员工仓库
func NewStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStaffRepository) WithTx(tx *gorm.DB) StaffRepository {
	if tx == nil {
		return r
	}
	return &GormStaffRepository{db: tx}
}

// GetByID 根据 ID 获取员工
func (r *GormStaffRepository) GetByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// GetByUsername 根据登录名获取员工
func (r *GormStaffRepository) GetByUsername(username string) (*models.Staff, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	var staff models.Staff
	if err := r.db.Where("username = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// List 员工列表
func (r *GormStaffRepository) List() ([]models.Staff, error) {
	var staff []models.Staff
	if err := r.db.Order("id ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// Create 创建员工
func (r *GormStaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// Update 更新员工
func (r *GormStaffRepository) Update(staff *models.Staff) error {
	return r.db.Save(staff).Error
}

// TouchLastLogin 更新最后登录时间
func (r *GormStaffRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Staff{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
