package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(recordsHandler *handlers.RecordsHandler, adminHandler *handlers.AdminHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	api.GET("/state", recordsHandler.State)

	api.POST("/temperatures", recordsHandler.AddTemperature)
	api.PUT("/temperatures/:id", recordsHandler.EditTemperature)

	api.POST("/deliveries", recordsHandler.AddDelivery)
	api.PUT("/deliveries/:id", recordsHandler.EditDelivery)

	api.POST("/cooling", recordsHandler.AddCooling)
	api.PUT("/cooling/:id", recordsHandler.EditCooling)

	api.POST("/oils", recordsHandler.AddOil)
	api.PUT("/oils/:id", recordsHandler.EditOil)
	api.DELETE("/oils/:id", recordsHandler.DeleteOil)

	api.POST("/labels", recordsHandler.AddLabel)
	api.PUT("/labels/:id", recordsHandler.EditLabel)

	api.POST("/documents", recordsHandler.AddDocument)
	api.DELETE("/documents/:id", recordsHandler.DeleteDocument)

	api.PATCH("/cleaning/:id", recordsHandler.ToggleCleaning)
	api.POST("/uploads/photo", recordsHandler.UploadPhoto)

	api.DELETE("/state", adminHandler.ResetState)

	api.GET("/report", adminHandler.DailyReport)
	api.GET("/backup", adminHandler.ExportBackup)
	api.POST("/backup", adminHandler.ImportBackup)

	api.GET("/settings", adminHandler.Settings)
	api.PUT("/settings", adminHandler.UpdateSettings)
	api.POST("/settings/equipment-import", adminHandler.ImportEquipment)
	api.POST("/settings/cleaning-import", adminHandler.ImportCleaningPlan)

	api.POST("/assistant", adminHandler.Chat)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
