package repository

import (
	"errors"
	"strings"

	"github.com/aurelion-pos/internal/models"

	"gorm.io/gorm"
)

// ClientRepository 客户数据访问接口
type ClientRepository interface {
	GetByID(id uint) (*models.Client, error)
	GetByPhone(phone string) (*models.Client, error)
	List(filter ClientListFilter) ([]models.Client, int64, error)
	Create(client *models.Client) error
	Update(client *models.Client) error
	WithTx(tx *gorm.DB) ClientRepository
}

// GormClientRepository GORM 实现
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建客户仓库
func NewClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// WithTx 绑定事务
func (r *GormClientRepository) WithTx(tx *gorm.DB) ClientRepository {
	if tx == nil {
		return r
	}
	return &GormClientRepository{db: tx}
}

// GetByID 根据 ID 获取客户
func (r *GormClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// GetByPhone 根据手机号获取客户
func (r *GormClientRepository) GetByPhone(phone string) (*models.Client, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	var client models.Client
	if err := r.db.Where("phone = ?", phone).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// List 客户列表
func (r *GormClientRepository) List(filter ClientListFilter) ([]models.Client, int64, error) {
	var clients []models.Client

	query := r.db.Model(&models.Client{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchLikeCondition(r.db, []string{"first_name", "last_name", "phone", "email"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC, id DESC").Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// Create 创建客户
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// Update 更新客户
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}
