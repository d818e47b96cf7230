package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/controllers/housekeeping_controller"
	"github.com/joy095/propertyops/controllers/maintenance_controller"
)

// RegisterTaskRoutes registers the housekeeping and maintenance queues.
func RegisterTaskRoutes(router *gin.Engine, deps *Dependencies) {
	housekeepingController := housekeeping_controller.NewHousekeepingController(deps.Tasks)
	maintenanceController := maintenance_controller.NewMaintenanceController(deps.Tasks)

	router.GET("/housekeeping", housekeepingController.ListTasks)
	router.GET("/maintenance", maintenanceController.ListTasks)

	housekeeping := router.Group("/housekeeping")
	housekeeping.Use(deps.authenticated())
	{
		housekeeping.POST("", deps.rate("create-housekeeping", "30-1m"), housekeepingController.CreateTask)
		housekeeping.PATCH("/:id/status", deps.rate("housekeeping-status", "60-1m"), housekeepingController.UpdateTaskStatus)
	}

	maintenance := router.Group("/maintenance")
	maintenance.Use(deps.authenticated())
	{
		maintenance.POST("", deps.rate("create-maintenance", "30-1m"), maintenanceController.CreateTask)
		maintenance.PATCH("/:id/status", deps.rate("maintenance-status", "60-1m"), maintenanceController.UpdateTaskStatus)
	}
}
