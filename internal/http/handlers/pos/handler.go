package pos

import (
	"github.com/aurelion-pos/internal/provider"
)

// Handler POS 接口处理器
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
