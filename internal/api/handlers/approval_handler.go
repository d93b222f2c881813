package handlers

import (
	"context"
	"net/http"

	"qa-warehouse-api-server/internal/service"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	Approvals *service.ApprovalService
}

type decisionRequest struct {
	versioned
	Remarks string `json:"remarks"`
}

type decideFunc func(ctx context.Context, id string, version int64, by, remarks string) (service.Decided, error)

// decide binds a QA decision; the decider is the signed-in user.
func decide(fn decideFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req decisionRequest
		if !bind(c, &req) {
			return
		}
		out, err := fn(c.Request.Context(), c.Param("id"), req.Version, actorName(c), req.Remarks)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *ApprovalHandler) List(c *gin.Context)      { listHandler(h.Approvals.List)(c) }
func (h *ApprovalHandler) Get(c *gin.Context)       { getHandler(h.Approvals.Get)(c) }
func (h *ApprovalHandler) Approve(c *gin.Context)   { decide(h.Approvals.Approve)(c) }
func (h *ApprovalHandler) Reject(c *gin.Context)    { decide(h.Approvals.Reject)(c) }
func (h *ApprovalHandler) Reinspect(c *gin.Context) { decide(h.Approvals.Reinspect)(c) }
