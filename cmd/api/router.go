package main

import (
	"context"
	"net/http"
	"time"

	"subjectstore-backend/internal/infrastructure/storage"
	"subjectstore-backend/internal/shared/middleware"
	"subjectstore-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// The disk strategy serves its upload directory read-only next to the
	// API; every other strategy renders images inside the document.
	if disk, ok := c.Images.(*storage.DiskStrategy); ok {
		router.Static(storage.PublicUploadPath, disk.Dir())
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		subjects := api.Group("/subjects")
		{
			subjects.POST("", c.SubjectHandler.Create)
			subjects.GET("", c.SubjectHandler.List)
			subjects.GET("/:id", c.SubjectHandler.GetByID)
			subjects.PUT("/:id", c.SubjectHandler.Update)
			subjects.DELETE("/:id", c.SubjectHandler.Delete)
		}
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"strategy":  appCtx.Images.Name(),
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
