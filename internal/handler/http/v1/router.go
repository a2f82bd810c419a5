package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	groups := protected.Group("/groups/:group_id")
	{
		groups.POST("/tracking/start", h.startTracking)
		groups.POST("/tracking/stop", h.stopTracking)
		groups.GET("/tracking", h.trackingStatus)

		// Данные от устройства группы
		groups.POST("/device/location", h.reportLocation)
		groups.POST("/device/battery", h.reportBattery)
		groups.PUT("/device/permission", h.setPermission)

		groups.POST("/geofences", h.createGeofence)
		groups.GET("/geofences", h.listGeofences)
	}

	geofences := protected.Group("/geofences")
	{
		geofences.GET("/:id", h.getGeofence)
		geofences.PUT("/:id", h.updateGeofence)
		geofences.DELETE("/:id", h.deleteGeofence)
	}
}
