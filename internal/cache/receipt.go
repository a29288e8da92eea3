package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func receiptKey(orderCode string) string {
	return fmt.Sprintf("receipt:%s", strings.ToUpper(strings.TrimSpace(orderCode)))
}

// GetReceipt 读取订单小票缓存
func GetReceipt(ctx context.Context, orderCode string, dest interface{}) (bool, error) {
	return GetJSON(ctx, receiptKey(orderCode), dest)
}

// SetReceipt 写入订单小票缓存
func SetReceipt(ctx context.Context, orderCode string, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, receiptKey(orderCode), value, ttl)
}

// DelReceipt 删除订单小票缓存（退换货后失效）
func DelReceipt(ctx context.Context, orderCode string) error {
	return Del(ctx, receiptKey(orderCode))
}
