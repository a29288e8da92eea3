package service

import (
	"github.com/shopspring/decimal"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// 动态会员等级阈值
var (
	platinumMinVisits = int64(12)
	platinumMinSpend  = decimal.NewFromInt(5000)
	goldMinVisits     = int64(6)
	goldMinSpend      = decimal.NewFromInt(1000)
	silverMinVisits   = int64(1)
)

// LoyaltyService 会员等级服务
type LoyaltyService struct {
	orderRepo repository.OrderRepository
}

// NewLoyaltyService 创建会员等级服务
func NewLoyaltyService(orderRepo repository.OrderRepository) *LoyaltyService {
	return &LoyaltyService{orderRepo: orderRepo}
}

// EffectiveTier 计算客户生效会员等级（手动指定优先，否则按消费历史动态推导）
func (s *LoyaltyService) EffectiveTier(client *models.Client) (string, error) {
	if client == nil {
		return constants.TierRegular, nil
	}
	if client.LoyaltyTier != "" && client.LoyaltyTier != constants.TierRegular {
		return client.LoyaltyTier, nil
	}

	visits, spend, err := s.orderRepo.CompletedStatsByClient(client.ID)
	if err != nil {
		return "", err
	}
	return dynamicTier(visits, spend.Decimal), nil
}

// dynamicTier 按到店次数与消费总额推导等级
func dynamicTier(visits int64, spend decimal.Decimal) string {
	switch {
	case visits >= platinumMinVisits && spend.GreaterThanOrEqual(platinumMinSpend):
		return constants.TierPlatinum
	case visits >= goldMinVisits && spend.GreaterThanOrEqual(goldMinSpend):
		return constants.TierGold
	case visits >= silverMinVisits:
		return constants.TierSilver
	default:
		return constants.TierRegular
	}
}
