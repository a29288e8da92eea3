package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// PromotionAdminService 促销管理服务（店主后台）
type PromotionAdminService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionAdminService 创建促销管理服务
func NewPromotionAdminService(promotionRepo repository.PromotionRepository) *PromotionAdminService {
	return &PromotionAdminService{promotionRepo: promotionRepo}
}

// PromotionInput 促销创建/更新输入
type PromotionInput struct {
	Name               string       `json:"name" binding:"required"`
	Code               string       `json:"code"`
	Type               string       `json:"type" binding:"required"`
	DiscountValue      models.Money `json:"discount_value"`
	BuyQuantity        int          `json:"buy_quantity"`
	GetQuantity        int          `json:"get_quantity"`
	SilverRate         models.Money `json:"silver_rate"`
	GoldRate           models.Money `json:"gold_rate"`
	PlatinumRate       models.Money `json:"platinum_rate"`
	AppliesTo          string       `json:"applies_to"`
	Category           string       `json:"category"`
	Brand              string       `json:"brand"`
	ProductIDs         []uint       `json:"product_ids"`
	CustomerTier       string       `json:"customer_tier"`
	MinPurchase        models.Money `json:"min_purchase"`
	MinItems           int          `json:"min_items"`
	StartsAt           *time.Time   `json:"starts_at"`
	EndsAt             *time.Time   `json:"ends_at"`
	IsActive           *bool        `json:"is_active"`
	MaxUses            int          `json:"max_uses"`
	MaxUsesPerCustomer int          `json:"max_uses_per_customer"`
}

// List 促销列表
func (s *PromotionAdminService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.promotionRepo.List(filter)
}

// Get 促销详情
func (s *PromotionAdminService) Get(id uint) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrNotFound
	}
	return promotion, nil
}

// Create 创建促销
func (s *PromotionAdminService) Create(input PromotionInput) (*models.Promotion, error) {
	promotion := &models.Promotion{IsActive: true}
	if err := s.apply(promotion, input); err != nil {
		return nil, err
	}
	if err := s.promotionRepo.Create(promotion); err != nil {
		return nil, err
	}
	if promotion.AppliesTo == constants.PromotionScopeProducts {
		if err := s.promotionRepo.ReplaceProductLinks(promotion.ID, input.ProductIDs); err != nil {
			return nil, err
		}
	}
	return s.Get(promotion.ID)
}

// Update 更新促销
func (s *PromotionAdminService) Update(id uint, input PromotionInput) (*models.Promotion, error) {
	promotion, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(promotion, input); err != nil {
		return nil, err
	}
	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, err
	}
	if promotion.AppliesTo == constants.PromotionScopeProducts {
		if err := s.promotionRepo.ReplaceProductLinks(promotion.ID, input.ProductIDs); err != nil {
			return nil, err
		}
	}
	return s.Get(promotion.ID)
}

// Deactivate 停用促销
func (s *PromotionAdminService) Deactivate(id uint) error {
	promotion, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.promotionRepo.Deactivate(promotion.ID)
}

// apply 校验输入并写入促销字段
func (s *PromotionAdminService) apply(promotion *models.Promotion, input PromotionInput) error {
	promotionType := strings.ToUpper(strings.TrimSpace(input.Type))
	switch promotionType {
	case constants.PromotionTypePercentage, constants.PromotionTypeFixed:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrPromotionInvalid
		}
	case constants.PromotionTypeBOGO:
		if input.BuyQuantity <= 0 || input.GetQuantity <= 0 {
			return ErrPromotionInvalid
		}
	case constants.PromotionTypeTiered, constants.PromotionTypeBundle:
	default:
		return ErrPromotionInvalid
	}
	if promotionType == constants.PromotionTypePercentage &&
		input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrPromotionInvalid
	}

	appliesTo := strings.ToUpper(strings.TrimSpace(input.AppliesTo))
	switch appliesTo {
	case "":
		appliesTo = constants.PromotionScopeAll
	case constants.PromotionScopeAll:
	case constants.PromotionScopeCategory:
		if strings.TrimSpace(input.Category) == "" {
			return ErrPromotionInvalid
		}
	case constants.PromotionScopeBrand:
		if strings.TrimSpace(input.Brand) == "" {
			return ErrPromotionInvalid
		}
	case constants.PromotionScopeProducts:
		if len(input.ProductIDs) == 0 {
			return ErrPromotionInvalid
		}
	default:
		return ErrPromotionInvalid
	}

	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return ErrPromotionInvalid
	}

	promotion.Name = strings.TrimSpace(input.Name)
	promotion.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	promotion.Type = promotionType
	promotion.DiscountValue = input.DiscountValue
	promotion.BuyQuantity = input.BuyQuantity
	promotion.GetQuantity = input.GetQuantity
	promotion.AppliesTo = appliesTo
	promotion.Category = strings.TrimSpace(input.Category)
	promotion.Brand = strings.TrimSpace(input.Brand)
	promotion.MinPurchase = input.MinPurchase
	promotion.MinItems = input.MinItems
	promotion.StartsAt = input.StartsAt
	promotion.EndsAt = input.EndsAt
	promotion.MaxUses = input.MaxUses
	promotion.MaxUsesPerCustomer = input.MaxUsesPerCustomer

	if tier := strings.ToUpper(strings.TrimSpace(input.CustomerTier)); tier != "" {
		promotion.CustomerTier = tier
	} else {
		promotion.CustomerTier = constants.TierRestrictionAll
	}

	if promotionType == constants.PromotionTypeTiered {
		if input.SilverRate.Decimal.GreaterThan(decimal.Zero) {
			promotion.SilverRate = input.SilverRate
		} else {
			promotion.SilverRate = models.NewMoneyFromDecimal(decimal.NewFromInt(5))
		}
		if input.GoldRate.Decimal.GreaterThan(decimal.Zero) {
			promotion.GoldRate = input.GoldRate
		} else {
			promotion.GoldRate = models.NewMoneyFromDecimal(decimal.NewFromInt(10))
		}
		if input.PlatinumRate.Decimal.GreaterThan(decimal.Zero) {
			promotion.PlatinumRate = input.PlatinumRate
		} else {
			promotion.PlatinumRate = models.NewMoneyFromDecimal(decimal.NewFromInt(15))
		}
	}

	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}
	return nil
}
