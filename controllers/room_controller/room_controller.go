package room_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/services/inventory_service"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
	"github.com/shopspring/decimal"
)

type RoomController struct {
	Inventory *inventory_service.InventoryService
}

func NewRoomController(inventory *inventory_service.InventoryService) *RoomController {
	return &RoomController{Inventory: inventory}
}

type CreateRoomTypeRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=1000"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Capacity    int             `json:"capacity" binding:"required,min=1"`
}

type CreateRoomRequest struct {
	Number     string `json:"number" binding:"required,max=20"`
	RoomTypeID string `json:"roomTypeId" binding:"required"`
}

// CreateRoomType handles POST /room-types.
func (rc *RoomController) CreateRoomType(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	rt, err := rc.Inventory.CreateRoomType(c.Request.Context(), req.Name, req.Description, req.BasePrice, req.Capacity)
	if err != nil {
		response.Error(c, err)
		return
	}
	logger.InfoLogger.Infof("Room type %s created", rt.Name)
	response.Success(c, http.StatusCreated, rt)
}

// ListRoomTypes handles GET /room-types.
func (rc *RoomController) ListRoomTypes(c *gin.Context) {
	types, err := rc.Inventory.ListRoomTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, types)
}

// CreateRoom handles POST /rooms.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	typeID, err := utils.ParseBodyID("roomTypeId", req.RoomTypeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	room, err := rc.Inventory.CreateRoom(c.Request.Context(), req.Number, typeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

// ListRooms handles GET /rooms with optional roomTypeId and status filters.
func (rc *RoomController) ListRooms(c *gin.Context) {
	var filter room_models.RoomFilter
	if raw := c.Query("roomTypeId"); raw != "" {
		id, err := utils.ParseBodyID("roomTypeId", raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.RoomTypeID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status, err := room_models.ParseRoomStatus(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = status
	}

	rooms, err := rc.Inventory.ListRooms(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// GetRoom handles GET /rooms/:id.
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	room, err := rc.Inventory.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}
