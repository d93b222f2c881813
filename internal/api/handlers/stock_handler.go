package handlers

import (
	"net/http"

	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
)

// StockHandler serves the adjustment, movement and production intake pages.
type StockHandler struct {
	Adjustments *service.AdjustmentService
	Movements   *service.MovementService
	Intake      *service.IntakeService
}

type rejectAdjustmentRequest struct {
	versioned
	Reason string `json:"reason"`
}

type receiveRequest struct {
	versioned
	Quantity int    `json:"quantity"`
	Location string `json:"storageLocation"`
	Date     string `json:"receivedDate"`
	Notes    string `json:"notes"`
}

func (h *StockHandler) ListAdjustments(c *gin.Context) { listHandler(h.Adjustments.List)(c) }
func (h *StockHandler) AdjustmentKPIs(c *gin.Context)  { kpiHandler(h.Adjustments.KPIs)(c) }
func (h *StockHandler) GetAdjustment(c *gin.Context)   { getHandler(h.Adjustments.Get)(c) }

func (h *StockHandler) CreateAdjustment(c *gin.Context) {
	var req workflow.AdjustmentRequest
	if !bind(c, &req) {
		return
	}
	req.RequestedBy = actorName(c)
	adj, err := h.Adjustments.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adj)
}

func (h *StockHandler) ApproveAdjustment(c *gin.Context) {
	var req versioned
	if !bind(c, &req) {
		return
	}
	adj, mov, err := h.Adjustments.Approve(c.Request.Context(), c.Param("id"), req.Version, actorName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adjustment": adj, "movement": mov})
}

func (h *StockHandler) RejectAdjustment(c *gin.Context) {
	var req rejectAdjustmentRequest
	if !bind(c, &req) {
		return
	}
	adj, err := h.Adjustments.Reject(c.Request.Context(), c.Param("id"), req.Version, actorName(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adj)
}

func (h *StockHandler) ListMovements(c *gin.Context)   { listHandler(h.Movements.List)(c) }
func (h *StockHandler) MovementKPIs(c *gin.Context)    { kpiHandler(h.Movements.KPIs)(c) }
func (h *StockHandler) GetMovement(c *gin.Context)     { getHandler(h.Movements.Get)(c) }
func (h *StockHandler) ExportMovements(c *gin.Context) { exportHandler(h.Movements.Export)(c) }
func (h *StockHandler) ArchiveMovement(c *gin.Context) { versionedHandler(h.Movements.Archive)(c) }
func (h *StockHandler) RestoreMovement(c *gin.Context) { versionedHandler(h.Movements.Restore)(c) }

func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req workflow.MovementRequest
	if !bind(c, &req) {
		return
	}
	req.PerformedBy = actorName(c)
	mov, err := h.Movements.Record(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mov)
}

func (h *StockHandler) Levels(c *gin.Context) {
	levels, err := h.Movements.Levels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": levels})
}

func (h *StockHandler) ListIntake(c *gin.Context) { listHandler(h.Intake.List)(c) }
func (h *StockHandler) IntakeKPIs(c *gin.Context) { kpiHandler(h.Intake.KPIs)(c) }
func (h *StockHandler) GetIntake(c *gin.Context)  { getHandler(h.Intake.Get)(c) }

func (h *StockHandler) Receive(c *gin.Context) {
	var req receiveRequest
	if !bind(c, &req) {
		return
	}
	intake, mov, err := h.Intake.Receive(c.Request.Context(), c.Param("id"), req.Version, workflow.Receipt{
		Quantity:   req.Quantity,
		Location:   req.Location,
		ReceivedBy: actorName(c),
		Date:       req.Date,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intake": intake, "movement": mov})
}
