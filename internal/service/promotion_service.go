package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// PricingLine 参与促销计算的单行商品（下单前的定价快照）
type PricingLine struct {
	ProductID uint
	Category  string
	Brand     string
	UnitPrice models.Money
	Quantity  int
}

// LineTotal 行小计
func (l PricingLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PromotionService 促销服务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
	usageRepo     repository.PromotionUsageRepository
}

// NewPromotionService 创建促销服务
func NewPromotionService(promotionRepo repository.PromotionRepository, usageRepo repository.PromotionUsageRepository) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		usageRepo:     usageRepo,
	}
}

// ResolveForCode 按促销码解析促销并计算折扣。
// 码不存在、不可用或客户不符合门槛时返回错误，不做静默降级。
func (s *PromotionService) ResolveForCode(code, clientTier string, clientID uint, lines []PricingLine, now time.Time) (*models.Promotion, models.Money, error) {
	promotion, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, models.ZeroMoney(), err
	}
	if promotion == nil {
		return nil, models.ZeroMoney(), ErrPromotionNotFound
	}
	if !promotion.IsLive(now) {
		return nil, models.ZeroMoney(), ErrPromotionInvalid
	}
	if !promotion.TierAllows(clientTier) {
		return nil, models.ZeroMoney(), ErrPromotionInvalid
	}
	capped, err := s.customerCapReached(promotion, clientID)
	if err != nil {
		return nil, models.ZeroMoney(), err
	}
	if capped {
		return nil, models.ZeroMoney(), ErrPromotionExhausted
	}

	discount := CalculateDiscount(promotion, lines, clientTier)
	return promotion, discount, nil
}

// BestAutomatic 在全部无码自动促销中选出折扣最大的一个。
// 折扣相同取更新的活动（列表按创建时间倒序，先到先得）。
func (s *PromotionService) BestAutomatic(clientTier string, clientID uint, lines []PricingLine, now time.Time) (*models.Promotion, models.Money, error) {
	promotions, err := s.promotionRepo.ListAutomatic()
	if err != nil {
		return nil, models.ZeroMoney(), err
	}

	var best *models.Promotion
	bestDiscount := models.ZeroMoney()
	for i := range promotions {
		promotion := &promotions[i]
		if !promotion.IsLive(now) || !promotion.TierAllows(clientTier) {
			continue
		}
		capped, err := s.customerCapReached(promotion, clientID)
		if err != nil {
			return nil, models.ZeroMoney(), err
		}
		if capped {
			continue
		}
		discount := CalculateDiscount(promotion, lines, clientTier)
		if discount.Decimal.GreaterThan(bestDiscount.Decimal) {
			best = promotion
			bestDiscount = discount
		}
	}

	return best, bestDiscount, nil
}

// customerCapReached 判断客户是否已达到单客使用上限
func (s *PromotionService) customerCapReached(promotion *models.Promotion, clientID uint) (bool, error) {
	if promotion.MaxUsesPerCustomer <= 0 || clientID == 0 || s.usageRepo == nil {
		return false, nil
	}
	used, err := s.usageRepo.CountByPromotionAndClient(promotion.ID, clientID)
	if err != nil {
		return false, err
	}
	return used >= int64(promotion.MaxUsesPerCustomer), nil
}

// CalculateDiscount 计算促销在给定商品行上的折扣金额。
// 先按适用范围过滤出子集，最低消费与最低件数都只看子集；不满足任一门槛返回 0。
func CalculateDiscount(promotion *models.Promotion, lines []PricingLine, clientTier string) models.Money {
	if promotion == nil || len(lines) == 0 {
		return models.ZeroMoney()
	}

	eligible := filterByScope(promotion, lines)
	if len(eligible) == 0 {
		return models.ZeroMoney()
	}

	subtotal := decimal.Zero
	totalQty := 0
	for _, line := range eligible {
		subtotal = subtotal.Add(line.LineTotal())
		totalQty += line.Quantity
	}

	if promotion.MinPurchase.Decimal.GreaterThan(decimal.Zero) && subtotal.LessThan(promotion.MinPurchase.Decimal) {
		return models.ZeroMoney()
	}
	if promotion.MinItems > 0 && totalQty < promotion.MinItems {
		return models.ZeroMoney()
	}

	var discount decimal.Decimal
	switch promotion.Type {
	case constants.PromotionTypePercentage:
		discount = subtotal.Mul(promotion.DiscountValue.Decimal).Div(decimal.NewFromInt(100))
	case constants.PromotionTypeFixed:
		discount = decimal.Min(promotion.DiscountValue.Decimal, subtotal)
	case constants.PromotionTypeBOGO:
		discount = bogoDiscount(promotion, eligible, totalQty)
	case constants.PromotionTypeTiered:
		discount = subtotal.Mul(tieredRate(promotion, clientTier)).Div(decimal.NewFromInt(100))
	case constants.PromotionTypeBundle:
		// 捆绑价规则尚未上线，预留类型按不打折处理
		discount = decimal.Zero
	default:
		discount = decimal.Zero
	}

	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount)
}

// bogoDiscount 买 N 赠 M：按子集内全部单件价格升序，凑满 buy+get 为一组，最便宜的 M 件免单
func bogoDiscount(promotion *models.Promotion, eligible []PricingLine, totalQty int) decimal.Decimal {
	groupSize := promotion.BuyQuantity + promotion.GetQuantity
	if promotion.BuyQuantity <= 0 || promotion.GetQuantity <= 0 || groupSize <= 0 {
		return decimal.Zero
	}
	sets := totalQty / groupSize
	if sets <= 0 {
		return decimal.Zero
	}
	freeCount := sets * promotion.GetQuantity

	unitPrices := make([]decimal.Decimal, 0, totalQty)
	for _, line := range eligible {
		for i := 0; i < line.Quantity; i++ {
			unitPrices = append(unitPrices, line.UnitPrice.Decimal)
		}
	}
	sort.Slice(unitPrices, func(i, j int) bool {
		return unitPrices[i].LessThan(unitPrices[j])
	})

	discount := decimal.Zero
	for i := 0; i < freeCount && i < len(unitPrices); i++ {
		discount = discount.Add(unitPrices[i])
	}
	return discount
}

// tieredRate 按客户等级取折扣率，REGULAR 及未知等级不享受
func tieredRate(promotion *models.Promotion, clientTier string) decimal.Decimal {
	switch clientTier {
	case constants.TierSilver:
		return promotion.SilverRate.Decimal
	case constants.TierGold:
		return promotion.GoldRate.Decimal
	case constants.TierPlatinum:
		return promotion.PlatinumRate.Decimal
	default:
		return decimal.Zero
	}
}

// filterByScope 过滤出促销适用的商品行
func filterByScope(promotion *models.Promotion, lines []PricingLine) []PricingLine {
	switch promotion.AppliesTo {
	case "", constants.PromotionScopeAll:
		return lines
	case constants.PromotionScopeCategory:
		return filterLines(lines, func(l PricingLine) bool {
			return l.Category != "" && l.Category == promotion.Category
		})
	case constants.PromotionScopeBrand:
		return filterLines(lines, func(l PricingLine) bool {
			return l.Brand != "" && l.Brand == promotion.Brand
		})
	case constants.PromotionScopeProducts:
		ids := promotion.ProductIDs()
		return filterLines(lines, func(l PricingLine) bool {
			_, ok := ids[l.ProductID]
			return ok
		})
	default:
		return nil
	}
}

func filterLines(lines []PricingLine, keep func(PricingLine) bool) []PricingLine {
	filtered := make([]PricingLine, 0, len(lines))
	for _, line := range lines {
		if keep(line) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}
