package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/aurelion-pos/internal/config"
	"github.com/aurelion-pos/internal/constants"
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware 为每个请求生成 request_id
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware 请求访问日志
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Infow("http_request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

// CORSMiddleware 跨域处理
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(cfg.AllowedMethods, ", ")
	allowedHeaders := strings.Join(cfg.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed := resolveAllowedOrigin(cfg, origin); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials && allowed != "*" {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		if cfg.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// resolveAllowedOrigin 返回命中的跨域来源，未命中返回空串
func resolveAllowedOrigin(cfg *config.CORSConfig, origin string) string {
	if len(cfg.AllowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range cfg.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// StaffAuthMiddleware 员工认证：校验 JWT 并加载员工上下文
func StaffAuthMiddleware(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractBearerToken(ctx)
		if token == "" {
			response.Unauthorized(ctx, "login required")
			ctx.Abort()
			return
		}

		claims, err := c.AuthService.ParseJWT(token)
		if err != nil {
			response.Unauthorized(ctx, "invalid or expired token")
			ctx.Abort()
			return
		}

		staff, err := c.StaffRepo.GetByID(claims.StaffID)
		if err != nil {
			response.ServerError(ctx, "internal error")
			ctx.Abort()
			return
		}
		if staff == nil || !staff.IsActive {
			response.Unauthorized(ctx, "staff account disabled")
			ctx.Abort()
			return
		}

		ctx.Set("staff_id", staff.ID)
		ctx.Set("username", staff.Username)
		ctx.Set("role", staff.Role)
		ctx.Next()
	}
}

// RequireRole 要求当前员工角色不低于指定角色
func RequireRole(minRole string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString("role")
		if !constants.RoleAtLeast(role, minRole) {
			logger.Warnw("role_denied",
				"staff_id", ctx.GetUint("staff_id"),
				"role", role,
				"required", minRole,
				"path", ctx.FullPath(),
			)
			response.Forbidden(ctx, "insufficient role")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// extractBearerToken 从 Authorization 头取 Bearer token
func extractBearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
