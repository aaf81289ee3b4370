package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	result := make([]productResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	product, err := h.inventory.CreateProduct(c.Request.Context(), req.Name, req.Price, req.Stock)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AdjustStock(c *gin.Context) {
	productID, ok := h.uuidParam(c, "productId")
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	stock, err := h.inventory.AdjustStock(c.Request.Context(), productID, req.Delta)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": productID.String(), "stock": stock})
}
