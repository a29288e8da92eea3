package service

import (
	"strconv"
	"strings"

	"github.com/aurelion-pos/internal/models"
	"github.com/aurelion-pos/internal/repository"
)

// OrderService 订单查询服务
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单查询服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// Get 按订单号查询订单，纯数字输入兜底按 ID 查询
func (s *OrderService) Get(orderRef string) (*models.Order, error) {
	orderRef = strings.TrimSpace(orderRef)
	if orderRef == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByCode(orderRef)
	if err != nil {
		return nil, err
	}
	if order == nil {
		if id, convErr := strconv.ParseUint(orderRef, 10, 64); convErr == nil {
			order, err = s.orderRepo.GetByID(uint(id))
			if err != nil {
				return nil, err
			}
		}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
