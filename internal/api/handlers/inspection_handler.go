package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
)

type InspectionHandler struct {
	Queue *service.QueueService
}

type assignRequest struct {
	versioned
	Inspector string `json:"inspector"`
}

type formRequest struct {
	versioned
	workflow.InspectionForm
	Attachments int `json:"attachments"`
}

func (h *InspectionHandler) List(c *gin.Context)    { listHandler(h.Queue.List)(c) }
func (h *InspectionHandler) KPIs(c *gin.Context)    { kpiHandler(h.Queue.KPIs)(c) }
func (h *InspectionHandler) Get(c *gin.Context)     { getHandler(h.Queue.Get)(c) }
func (h *InspectionHandler) Start(c *gin.Context)   { versionedHandler(h.Queue.Start)(c) }
func (h *InspectionHandler) Archive(c *gin.Context) { versionedHandler(h.Queue.Archive)(c) }
func (h *InspectionHandler) Restore(c *gin.Context) { versionedHandler(h.Queue.Restore)(c) }

func (h *InspectionHandler) Enqueue(c *gin.Context) {
	var req workflow.QueueRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.Queue.Enqueue(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InspectionHandler) Assign(c *gin.Context) {
	var req assignRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.Queue.Assign(c.Request.Context(), c.Param("id"), req.Version, req.Inspector)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InspectionHandler) SaveDraft(c *gin.Context) {
	var req formRequest
	if !bind(c, &req) {
		return
	}
	item, err := h.Queue.SaveDraft(c.Request.Context(), c.Param("id"), req.Version, req.InspectionForm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InspectionHandler) Submit(c *gin.Context) {
	var req formRequest
	if !bind(c, &req) {
		return
	}
	item, approval, err := h.Queue.Submit(c.Request.Context(), c.Param("id"), req.Version, req.InspectionForm, req.Attachments)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "approval": approval})
}
