package handler

import (
	"net/http"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/sale"
	"github.com/afifurrozaq/tillpos/internal/sale/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{uc: uc, logger: log}
}

// Checkout handles POST /api/checkout.
func (h *SaleHandler) Checkout(c *gin.Context) {
	var input dto.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saleID, err := h.uc.Checkout(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "saleId": saleID})
}
