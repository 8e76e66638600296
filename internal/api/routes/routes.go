// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techpartner-api-server/config"
	"techpartner-api-server/internal/ai"
	"techpartner-api-server/internal/api/handlers"
	"techpartner-api-server/internal/github"
	"techpartner-api-server/internal/socket"
	"techpartner-api-server/internal/store"
)

// SetupRouter nhận các thành phần phụ thuộc và nối toàn bộ route.
func SetupRouter(
	st *store.Store,
	syncClient *github.Client,
	aiClient *ai.Client,
	runtime *config.Runtime,
	wsHub *socket.Hub,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	// Khởi tạo các handlers
	assetHandler := &handlers.AssetHandler{Store: st, Sync: syncClient, Logger: logger}
	woHandler := &handlers.WorkOrderHandler{Store: st, Sync: syncClient, Hub: wsHub, Logger: logger}
	activityHandler := &handlers.ActivityHandler{Store: st, Sync: syncClient, Logger: logger}
	financeHandler := &handlers.FinanceHandler{Store: st, Sync: syncClient, Logger: logger}
	masterHandler := &handlers.MasterHandler{Store: st, Sync: syncClient, Logger: logger}
	syncHandler := &handlers.SyncHandler{Store: st, Sync: syncClient, Hub: wsHub, Logger: logger}
	settingsHandler := &handlers.SettingsHandler{Runtime: runtime, Sync: syncClient, Logger: logger}
	aiHandler := &handlers.AIHandler{Store: st, AI: aiClient, Runtime: runtime, Logger: logger}
	reportHandler := &handlers.ReportHandler{Store: st}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Logger: logger}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		apiV1.GET("/document", syncHandler.GetDocument)
		apiV1.POST("/sync", syncHandler.SyncNow)
		apiV1.POST("/push", syncHandler.PushNow)
		apiV1.GET("/backup", syncHandler.Backup)
		apiV1.POST("/restore", syncHandler.Restore)

		apiV1.GET("/settings", settingsHandler.GetSettings)
		apiV1.PUT("/settings", settingsHandler.UpdateSettings)

		assets := apiV1.Group("/assets")
		{
			assets.GET("/", assetHandler.ListAssets)
			assets.POST("/", assetHandler.SaveAsset)
			assets.POST("/bulk-delete", assetHandler.BulkDelete)
			assets.POST("/bulk-condition", assetHandler.BulkSetCondition)
			assets.GET("/:id/qr", assetHandler.GetAssetQR)
		}

		workorders := apiV1.Group("/workorders")
		{
			workorders.GET("/", woHandler.ListWorkOrders)
			workorders.POST("/", woHandler.CreateWorkOrder)
			workorders.PATCH("/:id/status", woHandler.UpdateStatus)
			workorders.POST("/:id/photos/:slot", woHandler.UploadPhoto)
		}

		activities := apiV1.Group("/activities")
		{
			activities.GET("/", activityHandler.ListActivities)
			activities.POST("/", activityHandler.CreateActivity)
		}

		finances := apiV1.Group("/finances")
		{
			finances.GET("/", financeHandler.ListFinances)
			finances.POST("/", financeHandler.CreateFinance)
		}

		master := apiV1.Group("/master")
		{
			master.GET("/locations", masterHandler.ListLocations)
			master.POST("/locations", masterHandler.CreateLocation)
			master.GET("/types", masterHandler.ListAssetTypes)
			master.POST("/types", masterHandler.CreateAssetType)
		}

		aiRoutes := apiV1.Group("/ai")
		{
			aiRoutes.POST("/chat", aiHandler.Chat)
			aiRoutes.POST("/diagnose", aiHandler.Diagnose)
		}

		reports := apiV1.Group("/reports")
		{
			reports.GET("/assets.xlsx", reportHandler.AssetReport)
			reports.GET("/workorders.xlsx", reportHandler.WorkOrderReport)
			reports.GET("/finances.xlsx", reportHandler.FinanceReport)
		}
	}

	return router
}
