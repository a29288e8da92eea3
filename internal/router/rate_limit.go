package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aurelion-pos/internal/cache"
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

// rateLimitScript 固定窗口计数：首次自增时设置过期
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
    redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimitMiddleware 基于 Redis 的固定窗口限流，Redis 不可用时直接放行
func RateLimitMiddleware(rule RateLimitRule, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := cache.Client()
		if client == nil || rule.MaxRequests <= 0 || rule.WindowSeconds <= 0 {
			c.Next()
			return
		}

		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}
		redisKey := fmt.Sprintf("ratelimit:%s:%s", rule.Prefix, key)

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{redisKey}, rule.WindowSeconds).Result()
		if err != nil {
			logger.Warnw("rate_limit_script_failed",
				"prefix", rule.Prefix,
				"error", err,
			)
			c.Next()
			return
		}

		if toInt64(result) > int64(rule.MaxRequests) {
			message := rule.Message
			if message == "" {
				message = "too many requests"
			}
			logger.Warnw("rate_limit_exceeded",
				"prefix", rule.Prefix,
				"key", key,
				"ip", c.ClientIP(),
			)
			response.Error(c, response.CodeTooMany, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 IP 加请求体字段限流（如登录用户名），读取后复原请求体
func KeyByIPAndJSONField(field string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return c.ClientIP()
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return c.ClientIP()
		}
		value, _ := payload[field].(string)
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s:%s", c.ClientIP(), value)
	}
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		var parsed int64
		_, _ = fmt.Sscanf(v, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}
