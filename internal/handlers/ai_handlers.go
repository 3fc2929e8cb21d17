package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DescribeInput is what the copy generator needs to know about a product.
type DescribeInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
	Stock int     `json:"stock" binding:"gte=0"`
}

// DescribeProduct is the handler for POST /v1/vendor/ai/describe.
// A generation failure surfaces directly as an error: no caching, no
// retry, no fallback text.
func (h *Handlers) DescribeProduct(c *gin.Context) {
	var input DescribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description, err := h.AI.GenerateDescription(c.Request.Context(), input.Name, input.Price, input.Stock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Copy generation unavailable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}
