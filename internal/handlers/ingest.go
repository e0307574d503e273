package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/credfile-backend/internal/ingest/payload"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
	"github.com/yungbote/credfile-backend/internal/services"
)

type IngestHandler struct {
	log *logger.Logger
	svc services.IngestionService
}

func NewIngestHandler(log *logger.Logger, svc services.IngestionService) *IngestHandler {
	return &IngestHandler{log: log.With("handler", "IngestHandler"), svc: svc}
}

// POST /api/credit-files
func (h *IngestHandler) IngestCreditFile(c *gin.Context) {
	var f payload.CreditFile
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}

	result, err := h.svc.Ingest(c.Request.Context(), &f)
	if err != nil {
		var schemaErr *services.SchemaInvalidError
		var refErr *services.ReferentialInvalidError
		var conflictErr *services.StorageConflictError
		switch {
		case errors.As(err, &schemaErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "schema_invalid", "details": schemaErr.Errors})
		case errors.As(err, &refErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "referential_invalid", "details": refErr.Errors})
		case errors.As(err, &conflictErr):
			c.JSON(http.StatusConflict, gin.H{"error": "storage_conflict"})
		default:
			h.log.Error("ingestion failed", "subject_id", f.SubjectID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion failed"})
		}
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"result": result})
}
