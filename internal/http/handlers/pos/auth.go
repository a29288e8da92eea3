package pos

import (
	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/logger"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Login 员工登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	staff, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		logger.Warnw("staff_login_failed",
			"username", req.Username,
			"ip", c.ClientIP(),
			"error", err,
		)
		respondError(c, err)
		return
	}

	logger.Infow("staff_login",
		"staff_id", staff.ID,
		"username", staff.Username,
		"role", staff.Role,
	)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"staff":      staff,
	})
}

// Me 当前登录员工信息
func (h *Handler) Me(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	staff, err := h.StaffRepo.GetByID(staffID)
	if err != nil {
		respondError(c, err)
		return
	}
	if staff == nil {
		response.Unauthorized(c, "login required")
		return
	}
	response.Success(c, staff)
}

// ChangePassword 修改当前员工密码
func (h *Handler) ChangePassword(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "old and new password are required")
		return
	}
	if err := h.AuthService.ChangePassword(staffID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "password updated", nil)
}
