package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/shopcore/internal/domain"
)

func statusOf(kind string) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidTransition:
		return http.StatusConflict
	case domain.KindPersistenceFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := statusOf(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "err", err)
		if !h.exposeErrors {
			message = "internal error"
		}
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(status, gin.H{
			"kind":      kind,
			"message":   message,
			"productId": stockErr.ProductID.String(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}

	c.JSON(status, errorResponse{Kind: kind, Message: message})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Kind: domain.KindInvalidRequest, Message: err.Error()})
}
