package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	Lookups service.Lookups
	Store   string
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": h.Store})
}

// GetLookups returns the option lists and page sizes the dashboard renders.
func (h *SystemHandler) GetLookups(c *gin.Context) {
	c.JSON(http.StatusOK, h.Lookups)
}
