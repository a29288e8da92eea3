package service

import (
	"strings"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// ClientService 客户服务
type ClientService struct {
	clientRepo     repository.ClientRepository
	orderRepo      repository.OrderRepository
	loyaltyService *LoyaltyService
}

// NewClientService 创建客户服务
func NewClientService(clientRepo repository.ClientRepository, orderRepo repository.OrderRepository, loyaltyService *LoyaltyService) *ClientService {
	return &ClientService{
		clientRepo:     clientRepo,
		orderRepo:      orderRepo,
		loyaltyService: loyaltyService,
	}
}

// ClientInput 客户创建/更新输入
type ClientInput struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
	LoyaltyTier string `json:"loyalty_tier"`
}

// ClientProfile 客户档案（含生效等级与消费统计）
type ClientProfile struct {
	Client        *models.Client `json:"client"`
	EffectiveTier string         `json:"effective_tier"`
	Visits        int64          `json:"visits"`
	TotalSpend    models.Money   `json:"total_spend"`
}

// List 客户列表
func (s *ClientService) List(filter repository.ClientListFilter) ([]models.Client, int64, error) {
	return s.clientRepo.List(filter)
}

// Profile 客户档案
func (s *ClientService) Profile(id uint) (*ClientProfile, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	tier, err := s.loyaltyService.EffectiveTier(client)
	if err != nil {
		return nil, err
	}
	visits, spend, err := s.orderRepo.CompletedStatsByClient(client.ID)
	if err != nil {
		return nil, err
	}
	return &ClientProfile{
		Client:        client,
		EffectiveTier: tier,
		Visits:        visits,
		TotalSpend:    spend,
	}, nil
}

// Create 创建客户
func (s *ClientService) Create(input ClientInput) (*models.Client, error) {
	client := &models.Client{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		Notes:       input.Notes,
		LoyaltyTier: normalizeTier(input.LoyaltyTier),
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update 更新客户
func (s *ClientService) Update(id uint, input ClientInput) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	client.FirstName = strings.TrimSpace(input.FirstName)
	client.LastName = strings.TrimSpace(input.LastName)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Email = strings.TrimSpace(input.Email)
	client.Notes = input.Notes
	client.LoyaltyTier = normalizeTier(input.LoyaltyTier)
	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// normalizeTier 归一化会员等级输入，非法值回落 REGULAR
func normalizeTier(tier string) string {
	tier = strings.ToUpper(strings.TrimSpace(tier))
	switch tier {
	case constants.TierSilver, constants.TierGold, constants.TierPlatinum:
		return tier
	default:
		return constants.TierRegular
	}
}
