package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/credfile-backend/internal/services"
)

type SubjectHandler struct {
	svc services.SubjectService
}

func NewSubjectHandler(svc services.SubjectService) *SubjectHandler {
	return &SubjectHandler{svc: svc}
}

// GET /api/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	overview, err := h.svc.GetOverview(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if overview == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "subject not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": overview})
}
