package repository

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// LocationRepository 门店位置数据访问接口
type LocationRepository interface {
	GetByID(id uint) (*models.Location, error)
	GetByCode(code string) (*models.Location, error)
	GetDefaultStore() (*models.Location, error)
	List() ([]models.Location, error)
	Create(location *models.Location) error
	WithTx(tx *gorm.DB) LocationRepository
}

// GormLocationRepository GORM 实现
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建位置仓库
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLocationRepository) WithTx(tx *gorm.DB) LocationRepository {
	if tx == nil {
		return r
	}
	return &GormLocationRepository{db: tx}
}

// GetByID 根据 ID 获取位置
func (r *GormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// GetByCode 根据编码获取位置
func (r *GormLocationRepository) GetByCode(code string) (*models.Location, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var location models.Location
	if err := r.db.Where("code = ?", code).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// GetDefaultStore 获取默认门店（最早创建的门店）
func (r *GormLocationRepository) GetDefaultStore() (*models.Location, error) {
	var location models.Location
	if err := r.db.Where("is_store = ?", true).
		Order("id ASC").
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// List 位置列表
func (r *GormLocationRepository) List() ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.Order("id ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Create 创建位置
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}
