package service

import (
	"strings"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// ProductService 商品目录服务
type ProductService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewProductService 创建商品目录服务
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Brand       string `json:"brand" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	BaseSKU     string `json:"base_sku" binding:"required"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
}

// VariantInput 规格创建/更新输入
type VariantInput struct {
	SKU         string       `json:"sku" binding:"required"`
	Color       string       `json:"color"`
	Size        string       `json:"size"`
	CostPrice   models.Money `json:"cost_price"`
	RetailPrice models.Money `json:"retail_price"`
	OnHand      int          `json:"on_hand"`
	MinStock    int          `json:"min_stock"`
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// LookupVariant 按 SKU 查询规格（收银台扫码用）
func (s *ProductService) LookupVariant(sku string) (*models.Variant, error) {
	variant, err := s.variantRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	return variant, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product := &models.Product{
		Brand:       strings.TrimSpace(input.Brand),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		BaseSKU:     strings.ToUpper(strings.TrimSpace(input.BaseSKU)),
		Description: input.Description,
		Condition:   strings.TrimSpace(input.Condition),
	}
	if product.Condition == "" {
		product.Condition = "New"
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	product.Brand = strings.TrimSpace(input.Brand)
	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.BaseSKU = strings.ToUpper(strings.TrimSpace(input.BaseSKU))
	product.Description = input.Description
	if condition := strings.TrimSpace(input.Condition); condition != "" {
		product.Condition = condition
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Archive 归档商品
func (s *ProductService) Archive(id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.productRepo.Archive(product.ID)
}

// AddVariant 为商品新增规格
func (s *ProductService) AddVariant(productID uint, input VariantInput) (*models.Variant, error) {
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}
	variant := &models.Variant{
		ProductID:   product.ID,
		SKU:         strings.ToUpper(strings.TrimSpace(input.SKU)),
		Color:       strings.TrimSpace(input.Color),
		Size:        strings.TrimSpace(input.Size),
		CostPrice:   input.CostPrice,
		RetailPrice: input.RetailPrice,
		Currency:    constants.DefaultCurrency,
		OnHand:      input.OnHand,
		MinStock:    input.MinStock,
	}
	if variant.MinStock <= 0 {
		variant.MinStock = 1
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant 更新规格（价格与阈值，库存调整走库存服务）
func (s *ProductService) UpdateVariant(variantID uint, input VariantInput) (*models.Variant, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	variant.Color = strings.TrimSpace(input.Color)
	variant.Size = strings.TrimSpace(input.Size)
	variant.CostPrice = input.CostPrice
	variant.RetailPrice = input.RetailPrice
	if input.MinStock > 0 {
		variant.MinStock = input.MinStock
	}
	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	return variant, nil
}
