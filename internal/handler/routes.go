package handler

import "github.com/gin-gonic/gin"

// Handlers bundles the handlers mounted by Register.
type Handlers struct {
	Sessions  *SessionHandler
	Lists     *ListHandler
	Selection *SelectionHandler
	Map       *MapHandler
	Exports   *ExportHandler
	Providers *ProviderHandler
	Metrics   *MetricsHandler
}

// Register mounts health, readiness and metrics at the root and the API under prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	r.GET("/metrics/summary", h.Metrics.Summary)

	api := r.Group(prefix)
	api.GET("/providers", h.Providers.List)
	api.DELETE("/cache", h.Providers.InvalidateCache)
	api.GET("/exports/:token", h.Exports.Download)

	sessions := api.Group("/sessions")
	sessions.POST("", h.Sessions.Create)
	sessions.GET("/:id", h.Sessions.Get)
	sessions.DELETE("/:id", h.Sessions.Delete)
	sessions.POST("/:id/search", h.Sessions.Search)

	sessions.GET("/:id/events", h.Lists.Events)
	sessions.GET("/:id/calendar", h.Lists.Calendar)

	sessions.PUT("/:id/selection", h.Selection.Select)
	sessions.DELETE("/:id/selection", h.Selection.Clear)
	sessions.GET("/:id/detail", h.Selection.Detail)

	sessions.GET("/:id/map", h.Map.View)
	sessions.PUT("/:id/viewport", h.Map.Viewport)
	sessions.POST("/:id/map/click", h.Map.Click)

	sessions.GET("/:id/export", h.Exports.Export)
	sessions.POST("/:id/export/link", h.Exports.Share)
}
