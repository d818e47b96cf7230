package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/controllers/calendar_controller"
	"github.com/joy095/propertyops/controllers/room_controller"
)

func RegisterRoomRoutes(router *gin.Engine, deps *Dependencies) {
	roomController := room_controller.NewRoomController(deps.Inventory)

	router.GET("/room-types", roomController.ListRoomTypes)
	router.GET("/rooms", roomController.ListRooms)
	router.GET("/rooms/:id", roomController.GetRoom)

	protected := router.Group("/")
	protected.Use(deps.authenticated())
	{
		protected.POST("/room-types", deps.rate("create-room-type", "10-1m"), roomController.CreateRoomType)
		protected.POST("/rooms", deps.rate("create-room", "30-1m"), roomController.CreateRoom)
	}
}

func RegisterCalendarRoutes(router *gin.Engine, deps *Dependencies) {
	calendarController := calendar_controller.NewCalendarController(deps.Calendar)

	router.GET("/calendar", deps.rate("calendar", "60-1m"), calendarController.GetEvents)
}
