package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.badRequest(c, fmt.Errorf("invalid productId: %w", err))
		return
	}

	quantity, err := h.carts.AddItem(c.Request.Context(), c.Param("userId"), productID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": productID.String(), "quantity": quantity})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := h.uuidParam(c, "productId")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), c.Param("userId"), productID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
