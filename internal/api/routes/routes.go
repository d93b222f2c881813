package routes

import (
	"time"

	"qa-warehouse-api-server/internal/api/handlers"
	"qa-warehouse-api-server/internal/api/middleware"
	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/models"
	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the components the router wires into handlers.
type Deps struct {
	Services       *service.Services
	Issuer         *auth.Issuer
	Hub            *socket.Hub
	Log            *zap.Logger
	AllowedOrigins []string
	StoreDriver    string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// SetupRouter builds the gin engine with every /api/v1 route.
func SetupRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	svc := d.Services

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), cors.New(corsConfig(d.AllowedOrigins)))

	inspections := &handlers.InspectionHandler{Queue: svc.Queue}
	approvals := &handlers.ApprovalHandler{Approvals: svc.Approvals}
	records := &handlers.RecordHandler{Records: svc.Records}
	capa := &handlers.CAPAHandler{CAPA: svc.CAPA}
	stock := &handlers.StockHandler{Adjustments: svc.Adjustments, Movements: svc.Movements, Intake: svc.Intake}
	reports := &handlers.ReportHandler{Reports: svc.Reports}
	profile := &handlers.ProfileHandler{Profile: svc.Profile}
	system := &handlers.SystemHandler{Lookups: svc.Lookups, Store: d.StoreDriver}
	ws := &handlers.WebSocketHandler{Hub: d.Hub, Issuer: d.Issuer, Sessions: svc.Profile, Log: log}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/health", system.Health)
		apiV1.GET("/ws", ws.ServeWs)
		apiV1.POST("/auth/login", profile.Login)

		authed := apiV1.Group("/")
		authed.Use(middleware.Authenticate(d.Issuer, svc.Profile))
		{
			authed.GET("/lookups", system.GetLookups)

			me := authed.Group("/profile")
			{
				me.GET("", profile.Get)
				me.PUT("", profile.Update)
				me.POST("/password", profile.ChangePassword)
				me.POST("/2fa", profile.Toggle2FA)
				me.PUT("/theme", profile.SetTheme)
				me.GET("/sessions", profile.Sessions)
				me.DELETE("/sessions/:id", profile.RevokeSession)
				me.POST("/sessions/revoke-others", profile.RevokeOthers)
				me.POST("/logout", profile.Logout)
			}

			qa := authed.Group("/")
			qa.Use(middleware.Authorize(models.RoleQA, models.RoleSuperAdmin))
			{
				q := qa.Group("/inspections")
				{
					q.GET("", inspections.List)
					q.POST("", inspections.Enqueue)
					q.GET("/kpis", inspections.KPIs)
					q.GET("/:id", inspections.Get)
					q.POST("/:id/assign", inspections.Assign)
					q.POST("/:id/start", inspections.Start)
					q.POST("/:id/draft", inspections.SaveDraft)
					q.POST("/:id/submit", inspections.Submit)
					q.POST("/:id/archive", inspections.Archive)
					q.POST("/:id/restore", inspections.Restore)
				}

				a := qa.Group("/approvals")
				{
					a.GET("", approvals.List)
					a.GET("/:id", approvals.Get)
					a.POST("/:id/approve", approvals.Approve)
					a.POST("/:id/reject", approvals.Reject)
					a.POST("/:id/reinspect", approvals.Reinspect)
				}

				r := qa.Group("/records")
				{
					r.GET("", records.List)
					r.GET("/export", records.Export)
					r.GET("/:id", records.Get)
					r.POST("/:id/reopen", records.Reopen)
					r.POST("/:id/archive", records.Archive)
					r.POST("/:id/restore", records.Restore)
				}

				c := qa.Group("/capas")
				{
					c.GET("", capa.List)
					c.POST("", capa.Create)
					c.GET("/kpis", capa.KPIs)
					c.GET("/:id", capa.Get)
					c.PUT("/:id", capa.Edit)
					c.POST("/:id/start", capa.Start)
					c.POST("/:id/complete", capa.Complete)
					c.POST("/:id/verify", capa.Verify)
					c.POST("/:id/archive", capa.Archive)
					c.POST("/:id/restore", capa.Restore)
				}

				rep := qa.Group("/reports/qa")
				{
					rep.GET("", reports.Summary)
					rep.GET("/export", reports.Export)
					rep.POST("/publish", reports.Publish)
				}
			}

			wh := authed.Group("/")
			wh.Use(middleware.Authorize(models.RoleWarehouse, models.RoleSuperAdmin))
			{
				adj := wh.Group("/adjustments")
				{
					adj.GET("", stock.ListAdjustments)
					adj.POST("", stock.CreateAdjustment)
					adj.GET("/kpis", stock.AdjustmentKPIs)
					adj.GET("/:id", stock.GetAdjustment)

					approvers := adj.Group("/")
					approvers.Use(middleware.Authorize(models.RoleSuperAdmin))
					{
						approvers.POST("/:id/approve", stock.ApproveAdjustment)
						approvers.POST("/:id/reject", stock.RejectAdjustment)
					}
				}

				mov := wh.Group("/movements")
				{
					mov.GET("", stock.ListMovements)
					mov.POST("", stock.RecordMovement)
					mov.GET("/kpis", stock.MovementKPIs)
					mov.GET("/export", stock.ExportMovements)
					mov.GET("/:id", stock.GetMovement)
					mov.POST("/:id/archive", stock.ArchiveMovement)
					mov.POST("/:id/restore", stock.RestoreMovement)
				}

				wh.GET("/stock-levels", stock.Levels)

				in := wh.Group("/intake")
				{
					in.GET("", stock.ListIntake)
					in.GET("/kpis", stock.IntakeKPIs)
					in.GET("/:id", stock.GetIntake)
					in.POST("/:id/receive", stock.Receive)
				}
			}
		}
	}

	return router
}
