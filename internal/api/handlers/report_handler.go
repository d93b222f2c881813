package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Reports *service.ReportService
}

// Summary GET /reports/qa?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Summary(c *gin.Context) {
	s, err := h.Reports.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ReportHandler) Export(c *gin.Context) {
	f, name, err := h.Reports.Export(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, f, name)
}

// Publish uploads the workbook to object storage and returns its URL.
func (h *ReportHandler) Publish(c *gin.Context) {
	url, err := h.Reports.Publish(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
