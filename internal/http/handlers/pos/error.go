package pos

import (
	"errors"

	"github.com/aurelion-pos/internal/http/response"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError 将服务层错误映射为统一响应
func respondError(c *gin.Context, err error) {
	if err == nil {
		response.ServerError(c, "internal error")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.Code, appErr.Message)
		return
	}

	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		response.ErrorWithData(c, response.CodeConflict, stockErr.Error(), gin.H{
			"sku":          stockErr.SKU,
			"product_name": stockErr.ProductName,
			"variant":      stockErr.Variant,
			"available":    stockErr.Available,
			"requested":    stockErr.Requested,
		})
		return
	}

	var returnItemErr *service.ReturnItemError
	if errors.As(err, &returnItemErr) {
		response.ErrorWithData(c, response.CodeBadRequest, returnItemErr.Error(), gin.H{
			"order_item_id": returnItemErr.OrderItemID,
			"sku":           returnItemErr.SKU,
			"reason":        returnItemErr.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPromotionNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrStaffDisabled):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrPromotionExhausted),
		errors.Is(err, service.ErrInsufficientStock):
		response.Error(c, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrUnknownSKU),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidUnitPrice),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrPromotionInvalid),
		errors.Is(err, service.ErrOrderNotReturnable),
		errors.Is(err, service.ErrOrderFullyReturned),
		errors.Is(err, service.ErrReturnWindowClosed),
		errors.Is(err, service.ErrReturnNothing),
		errors.Is(err, service.ErrReturnExcessQuantity),
		errors.Is(err, service.ErrReturnItemMismatch),
		errors.Is(err, service.ErrReturnInvalidReason),
		errors.Is(err, service.ErrReturnInvalidAction):
		response.BadRequest(c, err.Error())
	default:
		logger.Errorw("request_failed",
			"path", c.FullPath(),
			"method", c.Request.Method,
			"error", err,
		)
		response.ServerError(c, "internal error")
	}
}
