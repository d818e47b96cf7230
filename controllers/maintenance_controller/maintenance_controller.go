package maintenance_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/maintenance_models"
	"github.com/joy095/propertyops/services/task_service"
	"github.com/joy095/propertyops/utils"
	"github.com/joy095/propertyops/utils/response"
)

type MaintenanceController struct {
	Tasks *task_service.TaskService
}

func NewMaintenanceController(tasks *task_service.TaskService) *MaintenanceController {
	return &MaintenanceController{Tasks: tasks}
}

type CreateMaintenanceRequest struct {
	RoomID      string `json:"roomId" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required,max=2000"`
	AssignedTo  string `json:"assignedTo" binding:"max=100"`
}

type UpdateMaintenanceStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AssignedTo *string `json:"assignedTo" binding:"omitempty,max=100"`
}

// CreateTask handles POST /maintenance.
func (mc *MaintenanceController) CreateTask(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	roomID, err := utils.ParseBodyID("roomId", req.RoomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	taskType, err := maintenance_models.ParseMaintenanceType(req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}

	task, err := mc.Tasks.CreateMaintenance(c.Request.Context(), roomID, taskType, req.Description, req.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	logger.InfoLogger.Infof("Maintenance %s reported for room %s", task.ID, roomID)
	response.Success(c, http.StatusCreated, task)
}

// ListTasks handles GET /maintenance with optional roomId, status and type.
func (mc *MaintenanceController) ListTasks(c *gin.Context) {
	var filter maintenance_models.MaintenanceFilter
	if raw := c.Query("roomId"); raw != "" {
		id, err := utils.ParseBodyID("roomId", raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.RoomID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := maintenance_models.ParseMaintenanceStatus(raw)
		if !status.Valid() {
			response.Fail(c, http.StatusBadRequest, response.CodeInvalidInput, "unknown maintenance status "+raw)
			return
		}
		filter.Statuses = []maintenance_models.MaintenanceStatus{status}
	}
	if raw := c.Query("type"); raw != "" {
		taskType, err := maintenance_models.ParseMaintenanceType(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Type = taskType
	}

	tasks, err := mc.Tasks.ListMaintenance(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

// UpdateTaskStatus handles PATCH /maintenance/:id/status.
func (mc *MaintenanceController) UpdateTaskStatus(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req UpdateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := mc.Tasks.UpdateMaintenanceStatus(c.Request.Context(), id, maintenance_models.ParseMaintenanceStatus(req.Status), req.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, task)
}
