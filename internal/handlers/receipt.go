package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/credfile-backend/internal/services"
)

type ReceiptHandler struct {
	svc services.ReceiptService
}

func NewReceiptHandler(svc services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{svc: svc}
}

// GET /api/subjects/:id/receipts
func (h *ReceiptHandler) ListReceiptsForSubject(c *gin.Context) {
	receipts, err := h.svc.GetBySubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipts": receipts})
}

// GET /api/receipts/:digest
func (h *ReceiptHandler) GetReceiptByDigest(c *gin.Context) {
	receipt, err := h.svc.GetByDigest(c.Request.Context(), c.Param("digest"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if receipt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "receipt not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}
