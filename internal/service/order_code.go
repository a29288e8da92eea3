package service

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/repository"
)

// randOrderCode 生成一个随机订单号（A-Z0-9 定长）
func randOrderCode() string {
	alphabet := constants.OrderCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	for i := 0; i < constants.OrderCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte(alphabet[0])
			continue
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String()
}

// generateUniqueOrderCode 生成未被占用的订单号，重试耗尽返回 ErrOrderCodeExhausted
func generateUniqueOrderCode(orderRepo repository.OrderRepository) (string, error) {
	for i := 0; i < constants.OrderCodeMaxRetries; i++ {
		code := randOrderCode()
		exists, err := orderRepo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrOrderCodeExhausted
}
