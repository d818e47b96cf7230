package housekeeping_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/models/housekeeping_models"
	"github.com/joy095/propertyops/services/task_service"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
)

type HousekeepingController struct {
	Tasks *task_service.TaskService
}

func NewHousekeepingController(tasks *task_service.TaskService) *HousekeepingController {
	return &HousekeepingController{Tasks: tasks}
}

type CreateHousekeepingRequest struct {
	RoomID     string `json:"roomId" binding:"required"`
	Notes      string `json:"notes" binding:"max=2000"`
	AssignedTo string `json:"assignedTo" binding:"max=100"`
}

type UpdateHousekeepingStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AssignedTo *string `json:"assignedTo" binding:"omitempty,max=100"`
}

// CreateTask handles POST /housekeeping.
func (hc *HousekeepingController) CreateTask(c *gin.Context) {
	var req CreateHousekeepingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	roomID, err := utils.ParseBodyID("roomId", req.RoomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	task, err := hc.Tasks.CreateHousekeeping(c.Request.Context(), roomID, req.Notes, req.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, task)
}

// ListTasks handles GET /housekeeping with optional roomId and status.
func (hc *HousekeepingController) ListTasks(c *gin.Context) {
	var filter housekeeping_models.HousekeepingFilter
	if raw := c.Query("roomId"); raw != "" {
		id, err := utils.ParseBodyID("roomId", raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.RoomID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := housekeeping_models.ParseHousekeepingStatus(raw)
		if !status.Valid() {
			response.Fail(c, http.StatusBadRequest, response.CodeInvalidInput, "unknown housekeeping status "+raw)
			return
		}
		filter.Status = status
	}

	tasks, err := hc.Tasks.ListHousekeeping(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

// UpdateTaskStatus handles PATCH /housekeeping/:id/status.
func (hc *HousekeepingController) UpdateTaskStatus(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req UpdateHousekeepingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := hc.Tasks.UpdateHousekeepingStatus(c.Request.Context(), id, housekeeping_models.ParseHousekeepingStatus(req.Status), req.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}
