package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/credfile-backend/internal/services"
)

type InsightHandler struct {
	svc services.InsightService
}

func NewInsightHandler(svc services.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

// GET /api/subjects/:id/insights
func (h *InsightHandler) ListInsightsForSubject(c *gin.Context) {
	insights, err := h.svc.GetBySubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
