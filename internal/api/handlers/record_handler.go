package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	Records *service.RecordService
}

type reopenRequest struct {
	versioned
	Reason string `json:"reason"`
}

func (h *RecordHandler) List(c *gin.Context)    { listHandler(h.Records.List)(c) }
func (h *RecordHandler) Get(c *gin.Context)     { getHandler(h.Records.Get)(c) }
func (h *RecordHandler) Export(c *gin.Context)  { exportHandler(h.Records.Export)(c) }
func (h *RecordHandler) Archive(c *gin.Context) { versionedHandler(h.Records.Archive)(c) }
func (h *RecordHandler) Restore(c *gin.Context) { versionedHandler(h.Records.Restore)(c) }

func (h *RecordHandler) Reopen(c *gin.Context) {
	var req reopenRequest
	if !bind(c, &req) {
		return
	}
	record, item, err := h.Records.Reopen(c.Request.Context(), c.Param("id"), req.Version, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record, "queueItem": item})
}
