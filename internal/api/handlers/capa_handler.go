package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
)

type CAPAHandler struct {
	CAPA *service.CAPAService
}

type capaEditRequest struct {
	versioned
	workflow.CAPADraft
}

func (h *CAPAHandler) List(c *gin.Context)     { listHandler(h.CAPA.List)(c) }
func (h *CAPAHandler) KPIs(c *gin.Context)     { kpiHandler(h.CAPA.KPIs)(c) }
func (h *CAPAHandler) Get(c *gin.Context)      { getHandler(h.CAPA.Get)(c) }
func (h *CAPAHandler) Start(c *gin.Context)    { versionedHandler(h.CAPA.Start)(c) }
func (h *CAPAHandler) Complete(c *gin.Context) { versionedHandler(h.CAPA.Complete)(c) }
func (h *CAPAHandler) Archive(c *gin.Context)  { versionedHandler(h.CAPA.Archive)(c) }
func (h *CAPAHandler) Restore(c *gin.Context)  { versionedHandler(h.CAPA.Restore)(c) }

func (h *CAPAHandler) Create(c *gin.Context) {
	var req workflow.CAPADraft
	if !bind(c, &req) {
		return
	}
	capa, err := h.CAPA.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, capa)
}

func (h *CAPAHandler) Edit(c *gin.Context) {
	var req capaEditRequest
	if !bind(c, &req) {
		return
	}
	capa, err := h.CAPA.Edit(c.Request.Context(), c.Param("id"), req.Version, req.CAPADraft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, capa)
}

func (h *CAPAHandler) Verify(c *gin.Context) {
	var req versioned
	if !bind(c, &req) {
		return
	}
	capa, err := h.CAPA.Verify(c.Request.Context(), c.Param("id"), req.Version, actorName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, capa)
}
